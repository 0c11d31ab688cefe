package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID  string     `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	Excerpt   string     `gorm:"type:text" json:"excerpt"`
	CoverURL  string     `gorm:"type:varchar(500)" json:"cover_url"`
	Status    string     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Author    *UserModel `gorm:"foreignKey:AuthorID" json:"users,omitempty"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
