package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/blog_go_server/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDWithUser 获取评论及用户信息
func (r *CommentRepository) GetByIDWithUser(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDAndPostID 获取帖子下的指定评论，父评论校验用
func (r *CommentRepository) GetByIDAndPostID(id, postID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ? AND post_id = ?", id, postID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID 获取帖子的全部评论（平铺），兄弟顺序为 created_at 升序、id 作稳定次序
func (r *CommentRepository) ListByPostID(postID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// UpdateContent 更新评论内容。返回受影响行数：并发删除先行提交时为 0，
// 调用方据此报告 NotFound，绝不更新已删除的行。
func (r *CommentRepository) UpdateContent(id int64, content string) (int64, error) {
	result := r.db.Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteByIDs 单条语句删除整批评论，全部删除或全部保留
func (r *CommentRepository) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// CountByPostID 获取帖子的评论数
func (r *CommentRepository) CountByPostID(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
