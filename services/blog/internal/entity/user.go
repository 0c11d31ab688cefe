package entity

import "time"

// User is a row of the public users table: the profile half of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileInput carries the profile fields to change; nil fields are left alone.
type ProfileInput struct {
	Username  *string `json:"username,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

func (in ProfileInput) IsEmpty() bool {
	return in.Username == nil && in.AvatarURL == nil && in.Bio == nil
}
