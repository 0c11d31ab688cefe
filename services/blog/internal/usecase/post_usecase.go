package usecase

import (
	"context"
	"time"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type PostUseCase interface {
	ListPublished(ctx context.Context, page entity.Page) (*entity.PostPage, error)
	ListByAuthor(ctx context.Context, authorID string, page entity.Page) (*entity.PostPage, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	Create(ctx context.Context, in entity.PostInput) (*entity.Post, error)
	Update(ctx context.Context, id string, in entity.PostInput) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

type postUseCase struct {
	postRepo  repo.PostRepository
	authRepo  repo.AuthRepository
	publisher EventPublisher
	logger    *logger.Logger
}

func NewPostUseCase(
	postRepo repo.PostRepository,
	authRepo repo.AuthRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		authRepo:  authRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *postUseCase) ListPublished(ctx context.Context, page entity.Page) (*entity.PostPage, error) {
	page = page.Normalize()
	posts, total, err := uc.postRepo.ListByStatus(ctx, entity.StatusPublished, page)
	if err != nil {
		return nil, err
	}
	return newPostPage(posts, total, page), nil
}

func (uc *postUseCase) ListByAuthor(ctx context.Context, authorID string, page entity.Page) (*entity.PostPage, error) {
	page = page.Normalize()
	posts, total, err := uc.postRepo.ListByAuthor(ctx, authorID, page)
	if err != nil {
		return nil, err
	}
	return newPostPage(posts, total, page), nil
}

func (uc *postUseCase) Get(ctx context.Context, id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

func (uc *postUseCase) Create(ctx context.Context, in entity.PostInput) (*entity.Post, error) {
	user, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return nil, err
	}

	post, err := uc.postRepo.Create(ctx, user.ID, in)
	if err != nil {
		uc.logger.Error("Failed to create post for %s: %v", user.ID, err)
		return nil, err
	}

	uc.publishPost(ctx, entity.EventPostCreated, post)
	if post.Status == entity.StatusPublished {
		uc.publishPost(ctx, entity.EventPostPublished, post)
	}
	return post, nil
}

func (uc *postUseCase) Update(ctx context.Context, id string, in entity.PostInput) (*entity.Post, error) {
	user, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return nil, err
	}

	post, err := uc.postRepo.Update(ctx, id, user.ID, in)
	if err != nil {
		return nil, err
	}

	if in.Publishes() {
		uc.publishPost(ctx, entity.EventPostPublished, post)
	}
	return post, nil
}

func (uc *postUseCase) Delete(ctx context.Context, id string) error {
	user, err := requireUser(ctx, uc.authRepo)
	if err != nil {
		return err
	}
	return uc.postRepo.Delete(ctx, id, user.ID)
}

func (uc *postUseCase) publishPost(ctx context.Context, routingKey string, post *entity.Post) {
	publish(ctx, uc.publisher, uc.logger, routingKey, entity.PostEvent{
		PostID:     post.ID,
		AuthorID:   post.AuthorID,
		Title:      post.Title,
		Status:     post.Status,
		OccurredAt: time.Now().UTC(),
	})
}

func newPostPage(posts []*entity.Post, total int64, page entity.Page) *entity.PostPage {
	if posts == nil {
		posts = []*entity.Post{}
	}
	return &entity.PostPage{
		Posts: posts,
		Total: total,
		Page:  page.Number,
		Limit: page.Limit,
	}
}
