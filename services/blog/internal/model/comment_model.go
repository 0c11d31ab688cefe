package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string     `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	User      *UserModel `gorm:"foreignKey:UserID" json:"users,omitempty"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{&UserModel{}, &AccountModel{}, &PostModel{}, &CommentModel{}}
}
