// Package persistent implements the blog repositories on a self-hosted
// PostgreSQL database with the same schema as the hosted service.
package persistent

import (
	"errors"
	"fmt"

	"inkpress/pkg/jwt"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"

	"gorm.io/gorm"
)

func NewRepositories(db *gorm.DB, tokens *jwt.Service) *repo.Repositories {
	return &repo.Repositories{
		Auth:     NewAuthRepository(db, tokens),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Users:    NewUserRepository(db),
	}
}

func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
