package usecase

import (
	"context"
	"time"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type CommentUseCase interface {
	ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
	Create(ctx context.Context, in entity.CommentInput) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentUseCase struct {
	commentRepo repo.CommentRepository
	authRepo    repo.AuthRepository
	publisher   EventPublisher
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo repo.CommentRepository,
	authRepo repo.AuthRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		authRepo:    authRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *commentUseCase) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	comments, err := uc.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*entity.Comment{}
	}
	return comments, nil
}

func (uc *commentUseCase) Create(ctx context.Context, in entity.CommentInput) (*entity.Comment, error) {
	user, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.Create(ctx, user.ID, in)
	if err != nil {
		uc.logger.Error("Failed to create comment on %s: %v", in.PostID, err)
		return nil, err
	}

	publish(ctx, uc.publisher, uc.logger, entity.EventCommentCreated, entity.CommentEvent{
		CommentID:  comment.ID,
		PostID:     comment.PostID,
		UserID:     comment.UserID,
		OccurredAt: time.Now().UTC(),
	})
	return comment, nil
}

func (uc *commentUseCase) Delete(ctx context.Context, id string) error {
	user, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return err
	}
	return uc.commentRepo.Delete(ctx, id, user.ID)
}
