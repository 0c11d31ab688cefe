package remote

import (
	"context"

	"inkpress/pkg/baas"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/repo"
)

type postRepository struct {
	client *baas.Client
}

func NewPostRepository(client *baas.Client) repo.PostRepository {
	return &postRepository{client: client}
}

type postRow struct {
	AuthorID string `json:"author_id"`
	entity.PostInput
}

func (r *postRepository) ListByStatus(ctx context.Context, status entity.PostStatus, page entity.Page) ([]*entity.Post, int64, error) {
	from, to := page.Range()

	var posts []*entity.Post
	total, err := r.client.From(repo.TablePosts).
		Select(postColumns, baas.CountExact).
		Eq("status", status).
		Order("created_at", false).
		Range(from, to).
		Execute(ctx, &posts)
	if err != nil {
		return nil, 0, mapError("list posts", err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, page entity.Page) ([]*entity.Post, int64, error) {
	from, to := page.Range()

	var posts []*entity.Post
	total, err := r.client.From(repo.TablePosts).
		Select(postColumns, baas.CountExact).
		Eq("author_id", authorID).
		Order("created_at", false).
		Range(from, to).
		Execute(ctx, &posts)
	if err != nil {
		return nil, 0, mapError("list author posts", err)
	}
	return posts, total, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	_, err := r.client.From(repo.TablePosts).
		Select(postColumns).
		Eq("id", id).
		Single().
		Execute(ctx, &post)
	if err != nil {
		return nil, mapError("get post", err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, authorID string, in entity.PostInput) (*entity.Post, error) {
	var post entity.Post
	_, err := r.client.From(repo.TablePosts).
		Insert([]postRow{{AuthorID: authorID, PostInput: in}}).
		Select("*").
		Single().
		Execute(ctx, &post)
	if err != nil {
		return nil, mapError("create post", err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, id, authorID string, in entity.PostInput) (*entity.Post, error) {
	var post entity.Post
	_, err := r.client.From(repo.TablePosts).
		Update(in).
		Eq("id", id).
		Eq("author_id", authorID).
		Select("*").
		Single().
		Execute(ctx, &post)
	if err != nil {
		return nil, mapError("update post", err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id, authorID string) error {
	_, err := r.client.From(repo.TablePosts).
		Delete().
		Eq("id", id).
		Eq("author_id", authorID).
		Execute(ctx, nil)
	return mapError("delete post", err)
}
