// Package remote implements the blog repositories on top of the hosted BaaS.
package remote

import (
	"fmt"

	"inkpress/pkg/baas"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

const (
	postColumns    = "*, users (id, username, avatar_url, bio)"
	commentColumns = "*, users (id, username, avatar_url)"
)

func NewRepositories(client *baas.Client) *repo.Repositories {
	return &repo.Repositories{
		Auth:     NewAuthRepository(client),
		Posts:    NewPostRepository(client),
		Comments: NewCommentRepository(client),
		Users:    NewUserRepository(client),
	}
}

// mapError turns the single-row "no rows" answer into entity.ErrNotFound and
// keeps the service error in the chain.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if baas.IsNoRows(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
