package persistent

import (
	"context"

	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/model"
	"inkpress/services/blog/internal/repo"

	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repo.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	var comments []*model.CommentModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, mapError("list comments", err)
	}

	result := make([]*entity.Comment, len(comments))
	for i, c := range comments {
		result[i] = ToCommentEntity(c)
	}
	return result, nil
}

func (r *commentRepository) Create(ctx context.Context, userID string, in entity.CommentInput) (*entity.Comment, error) {
	db := r.db.WithContext(ctx)

	var posts int64
	if err := db.Model(&model.PostModel{}).Where("id = ?", in.PostID).Count(&posts).Error; err != nil {
		return nil, mapError("create comment", err)
	}
	if posts == 0 {
		return nil, mapError("create comment", gorm.ErrRecordNotFound)
	}

	comment := &model.CommentModel{PostID: in.PostID, UserID: userID, Content: in.Content}
	if err := db.Create(comment).Error; err != nil {
		return nil, mapError("create comment", err)
	}
	return ToCommentEntity(comment), nil
}

func (r *commentRepository) Delete(ctx context.Context, id, userID string) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CommentModel{}).Error
	return mapError("delete comment", err)
}
