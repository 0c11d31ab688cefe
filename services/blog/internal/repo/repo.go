// Package repo declares what the blog facade needs from a backend. The remote
// package serves it from the hosted BaaS, persistent from PostgreSQL.
package repo

import (
	"context"

	"inkpress/services/blog/internal/entity"
)

const (
	TableUsers    = "users"
	TablePosts    = "posts"
	TableComments = "comments"
)

type AuthRepository interface {
	SignUp(ctx context.Context, email, password, username string) (*entity.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*entity.AuthResult, error)
	SignOut(ctx context.Context) error
	// CurrentUser returns nil, nil when the caller has no valid session.
	CurrentUser(ctx context.Context) (*entity.Identity, error)
	OnAuthStateChange(listener entity.AuthListener) (unsubscribe func())
}

type PostRepository interface {
	ListByStatus(ctx context.Context, status entity.PostStatus, page entity.Page) ([]*entity.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string, page entity.Page) ([]*entity.Post, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Create(ctx context.Context, authorID string, in entity.PostInput) (*entity.Post, error)
	// Update and Delete only touch rows owned by authorID.
	Update(ctx context.Context, id, authorID string, in entity.PostInput) (*entity.Post, error)
	Delete(ctx context.Context, id, authorID string) error
}

type CommentRepository interface {
	ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
	Create(ctx context.Context, userID string, in entity.CommentInput) (*entity.Comment, error)
	Delete(ctx context.Context, id, userID string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Update only touches the profile when id is userID.
	Update(ctx context.Context, id, userID string, in entity.ProfileInput) (*entity.User, error)
}

type Repositories struct {
	Auth     AuthRepository
	Posts    PostRepository
	Comments CommentRepository
	Users    UserRepository
}
