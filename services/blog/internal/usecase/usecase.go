// Package usecase is the blog's data-access facade: every operation is one
// backend call, plus a current-user lookup for writes.
package usecase

import (
	"context"
	"io"

	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

// EventPublisher delivers domain events. Implemented by pkg/queue.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// ObjectStorage stores uploaded files and returns their public URL.
// Implemented by pkg/s3.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reports the key of an object URL this storage served.
	KeyFromURL(objectURL string) (string, bool)
}

type UseCases struct {
	Auth     AuthUseCase
	Posts    PostUseCase
	Comments CommentUseCase
	Users    UserUseCase
}

// New builds the facade over repos. publisher and storage may be nil.
func New(repos *repo.Repositories, publisher EventPublisher, storage ObjectStorage, log *logger.Logger) *UseCases {
	return &UseCases{
		Auth:     NewAuthUseCase(repos.Auth, log),
		Posts:    NewPostUseCase(repos.Posts, repos.Auth, publisher, log),
		Comments: NewCommentUseCase(repos.Comments, repos.Auth, publisher, log),
		Users:    NewUserUseCase(repos.Users, repos.Auth, storage, log),
	}
}

// requireUser resolves the caller for a write.
func requireUser(ctx context.Context, auth repo.AuthRepository) (*entity.Identity, error) {
	user, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, entity.ErrNotSignedIn
	}
	return user, nil
}

func publish(ctx context.Context, publisher EventPublisher, log *logger.Logger, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("Failed to publish %s event: %v", routingKey, err)
	}
}
