package model

import (
	"time"
)

// Like 一个用户对一个帖子至多一条记录，(user_id, post_id) 唯一约束兜底并发插入
type Like struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uniq_user_post_like" json:"user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uniq_user_post_like;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
