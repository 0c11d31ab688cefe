package entity

import "time"

// Routing keys of the domain events published after successful writes.
const (
	EventPostCreated    = "post.created"
	EventPostPublished  = "post.published"
	EventCommentCreated = "comment.created"
)

type PostEvent struct {
	PostID     string     `json:"post_id"`
	AuthorID   string     `json:"author_id"`
	Title      string     `json:"title"`
	Status     PostStatus `json:"status"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type CommentEvent struct {
	CommentID  string    `json:"comment_id"`
	PostID     string    `json:"post_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
