package persistent

import (
	"context"
	"errors"

	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/model"
	"inkpress/services/blog/internal/repo"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repo.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListByStatus(ctx context.Context, status entity.PostStatus, page entity.Page) ([]*entity.Post, int64, error) {
	return r.list(ctx, "status = ?", string(status), page)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, page entity.Page) ([]*entity.Post, int64, error) {
	return r.list(ctx, "author_id = ?", authorID, page)
}

func (r *postRepository) list(ctx context.Context, where string, arg interface{}, page entity.Page) ([]*entity.Post, int64, error) {
	page = page.Normalize()
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.PostModel{}).Where(where, arg).Count(&total).Error; err != nil {
		return nil, 0, mapError("count posts", err)
	}

	var posts []*model.PostModel
	err := db.Preload("Author").
		Where(where, arg).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, mapError("list posts", err)
	}

	return ToPostEntities(posts), total, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var post model.PostModel
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, mapError("get post", err)
	}
	return ToPostEntity(&post), nil
}

func (r *postRepository) Create(ctx context.Context, authorID string, in entity.PostInput) (*entity.Post, error) {
	post := &model.PostModel{AuthorID: authorID, Status: string(entity.StatusDraft)}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.CoverURL != nil {
		post.CoverURL = *in.CoverURL
	}
	if in.Status != nil {
		post.Status = string(*in.Status)
	}

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, mapError("create post", err)
	}
	return ToPostEntity(post), nil
}

func (r *postRepository) Update(ctx context.Context, id, authorID string, in entity.PostInput) (*entity.Post, error) {
	db := r.db.WithContext(ctx)

	if updates := postUpdates(in); len(updates) > 0 {
		result := db.Model(&model.PostModel{}).
			Where("id = ? AND author_id = ?", id, authorID).
			Updates(updates)
		if result.Error != nil {
			return nil, mapError("update post", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, mapError("update post", gorm.ErrRecordNotFound)
		}
	}

	var post model.PostModel
	if err := db.Where("id = ? AND author_id = ?", id, authorID).First(&post).Error; err != nil {
		return nil, mapError("update post", err)
	}
	return ToPostEntity(&post), nil
}

func (r *postRepository) Delete(ctx context.Context, id, authorID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&model.PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNothingDeleted
		}
		return tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error
	})
	if errors.Is(err, errNothingDeleted) {
		return nil
	}
	return mapError("delete post", err)
}

var errNothingDeleted = errors.New("nothing deleted")
