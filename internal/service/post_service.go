package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/blog_go_server/internal/authz"
	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/model/dto"
	"github.com/qs3c/blog_go_server/internal/repository"
)

var (
	ErrPostPermission = errors.New("无权操作此帖子")
	ErrEmptyTitle     = errors.New("标题不能为空")
)

type PostService struct {
	postRepo    *repository.PostRepository
	likeRepo    *repository.LikeRepository
	commentRepo *repository.CommentRepository
}

func NewPostService(
	postRepo *repository.PostRepository,
	likeRepo *repository.LikeRepository,
	commentRepo *repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// Create 创建帖子，图片已由上层上传完成，这里只保存地址
func (s *PostService) Create(authorID int64, req *dto.CreatePostRequest, imageURL, imageKey string) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &model.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		ImageKey: imageKey,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

// Update 编辑帖子，作者或 admin 可操作，字段按给出的部分更新
func (s *PostService) Update(postID, actorID int64, actorRole string, req *dto.UpdatePostRequest, imageURL, imageKey string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !authz.CanManage(actorRole, actorID, post.AuthorID) {
		return nil, ErrPostPermission
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		post.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, ErrEmptyContent
		}
		post.Content = content
	}
	if imageURL != "" {
		post.ImageURL = imageURL
		post.ImageKey = imageKey
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete 删除帖子及其全部评论、点赞，单事务完成。
// 返回删除前的帖子，供上层清理外部存储的图片。
func (s *PostService) Delete(postID, actorID int64, actorRole string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !authz.CanManage(actorRole, actorID, post.AuthorID) {
		return nil, ErrPostPermission
	}

	if err := s.postRepo.DeleteCascade(postID); err != nil {
		return nil, err
	}

	return post, nil
}

// List 分页获取帖子列表，search 为直接查询参数
func (s *PostService) List(page, pageSize int, search string, actorID int64, actorRole string) ([]*dto.PostItem, int64, error) {
	posts, total, err := s.postRepo.List(page, pageSize, search)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.PostItem, len(posts))
	for i, p := range posts {
		items[i], err = s.buildPostItem(p, actorID, actorRole)
		if err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

// Get 获取帖子详情
func (s *PostService) Get(postID, actorID int64, actorRole string) (*dto.PostItem, error) {
	post, err := s.postRepo.GetByIDWithAuthor(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return s.buildPostItem(post, actorID, actorRole)
}

func (s *PostService) buildPostItem(p *model.Post, actorID int64, actorRole string) (*dto.PostItem, error) {
	likeCount, err := s.likeRepo.CountByPostID(p.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	if actorID != 0 {
		liked, err = s.likeRepo.Exists(actorID, p.ID)
		if err != nil {
			return nil, err
		}
	}

	item := &dto.PostItem{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		IsOwner:   p.AuthorID == actorID,
		CanEdit:   authz.CanManage(actorRole, actorID, p.AuthorID),
		CanDelete: authz.CanManage(actorRole, actorID, p.AuthorID),
		LikeCount: likeCount,
		IsLiked:   liked,
	}

	if p.Author != nil {
		item.AuthorUsername = p.Author.Username
	}

	return item, nil
}
