package entity

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Excerpt   string     `json:"excerpt"`
	CoverURL  string     `json:"cover_url"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Author is embedded by reads under the table's name.
	Author *User `json:"users,omitempty"`
}

// PostInput is the writable part of a post. On update nil fields are left
// alone.
type PostInput struct {
	Title    *string     `json:"title,omitempty"`
	Content  *string     `json:"content,omitempty"`
	Excerpt  *string     `json:"excerpt,omitempty"`
	CoverURL *string     `json:"cover_url,omitempty"`
	Status   *PostStatus `json:"status,omitempty"`
}

func (in PostInput) IsEmpty() bool {
	return in.Title == nil && in.Content == nil && in.Excerpt == nil && in.CoverURL == nil && in.Status == nil
}

// Publishes reports whether applying the input leaves the post published.
func (in PostInput) Publishes() bool {
	return in.Status != nil && *in.Status == StatusPublished
}

type PostPage struct {
	Posts []*Post `json:"posts"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
