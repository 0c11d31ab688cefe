package remote

import (
	"context"

	"inkpress/pkg/baas"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type commentRepository struct {
	client *baas.Client
}

func NewCommentRepository(client *baas.Client) repo.CommentRepository {
	return &commentRepository{client: client}
}

type commentRow struct {
	UserID string `json:"user_id"`
	entity.CommentInput
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	_, err := r.client.From(repo.TableComments).
		Select(commentColumns).
		Eq("post_id", postID).
		Order("created_at", true).
		Execute(ctx, &comments)
	if err != nil {
		return nil, mapError("list comments", err)
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, userID string, in entity.CommentInput) (*entity.Comment, error) {
	var comment entity.Comment
	_, err := r.client.From(repo.TableComments).
		Insert([]commentRow{{UserID: userID, CommentInput: in}}).
		Select("*").
		Single().
		Execute(ctx, &comment)
	if err != nil {
		return nil, mapError("create comment", err)
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.client.From(repo.TableComments).
		Delete().
		Eq("id", id).
		Eq("user_id", userID).
		Execute(ctx, nil)
	return mapError("delete comment", err)
}
