package remote

import (
	"context"

	"inkpress/pkg/baas"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type userRepository struct {
	client *baas.Client
}

func NewUserRepository(client *baas.Client) repo.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	_, err := r.client.From(repo.TableUsers).
		Select("*").
		Eq("id", id).
		Single().
		Execute(ctx, &user)
	if err != nil {
		return nil, mapError("get profile", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id, userID string, in entity.ProfileInput) (*entity.User, error) {
	var user entity.User
	_, err := r.client.From(repo.TableUsers).
		Update(in).
		Eq("id", id).
		Eq("id", userID).
		Select("*").
		Single().
		Execute(ctx, &user)
	if err != nil {
		return nil, mapError("update profile", err)
	}
	return &user, nil
}
