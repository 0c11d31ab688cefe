package persistent

import (
	"context"

	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/model"
	"inkpress/services/blog/internal/repo"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapError("get profile", err)
	}
	return ToUserEntity(&user), nil
}

func (r *userRepository) Update(ctx context.Context, id, userID string, in entity.ProfileInput) (*entity.User, error) {
	db := r.db.WithContext(ctx)

	if updates := profileUpdates(in); len(updates) > 0 {
		result := db.Model(&model.UserModel{}).Where("id = ? AND id = ?", id, userID).Updates(updates)
		if result.Error != nil {
			return nil, mapError("update profile", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, mapError("update profile", gorm.ErrRecordNotFound)
		}
	}

	if id != userID {
		return nil, mapError("update profile", gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, id)
}
