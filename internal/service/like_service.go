package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/model/dto"
	"github.com/qs3c/blog_go_server/internal/repository"
)

type LikeService struct {
	likeRepo *repository.LikeRepository
	postRepo *repository.PostRepository
}

func NewLikeService(likeRepo *repository.LikeRepository, postRepo *repository.PostRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
	}
}

// Toggle 点赞切换：已点赞则取消，未点赞则插入。
// (user_id, post_id) 唯一索引兜底，并发重复插入落为 no-op，
// 绝不产生重复行，也不作为失败上报。LikeCount 为变更后的计数。
func (s *LikeService) Toggle(userID, postID int64) (*dto.LikeResponse, *model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	exists, err := s.likeRepo.Exists(userID, postID)
	if err != nil {
		return nil, nil, err
	}

	if exists {
		// 受影响行数为 0 说明并发取消已先行完成，结果一致
		if _, err := s.likeRepo.Delete(userID, postID); err != nil {
			return nil, nil, err
		}

		count, err := s.likeRepo.CountByPostID(postID)
		if err != nil {
			return nil, nil, err
		}
		return &dto.LikeResponse{Liked: false, LikeCount: count}, post, nil
	}

	// 冲突时 DO NOTHING，同样视为已点赞
	if _, err := s.likeRepo.Create(&model.Like{UserID: userID, PostID: postID}); err != nil {
		return nil, nil, err
	}

	count, err := s.likeRepo.CountByPostID(postID)
	if err != nil {
		return nil, nil, err
	}
	return &dto.LikeResponse{Liked: true, LikeCount: count}, post, nil
}
