package entity

import "time"

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"users,omitempty"`
}

type CommentInput struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}
