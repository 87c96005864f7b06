package model

import (
	"time"
)

type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	AuthorID  int64     `gorm:"not null;index" json:"author_id"`
	Title     string    `gorm:"size:80;not null" json:"title"`
	Content   string    `gorm:"size:1500;not null" json:"content"`
	ImageURL  string    `gorm:"size:500" json:"image_url,omitempty"`
	ImageKey  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
