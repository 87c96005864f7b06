package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/blog_go_server/internal/model"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create 插入点赞记录。(user_id, post_id) 唯一索引兜底：
// 并发冲突时 DO NOTHING，返回受影响行数 0，不报错也不产生重复行。
func (r *LikeRepository) Create(like *model.Like) (int64, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	return result.RowsAffected, result.Error
}

// Delete 删除点赞记录，返回受影响行数
func (r *LikeRepository) Delete(userID, postID int64) (int64, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

// Exists 检查点赞是否存在
func (r *LikeRepository) Exists(userID, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// CountByPostID 获取帖子的点赞数
func (r *LikeRepository) CountByPostID(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
