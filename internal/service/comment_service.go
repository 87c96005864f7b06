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
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentPermission = errors.New("无权操作此评论")
	ErrParentNotFound    = errors.New("父评论不存在")
	ErrEmptyContent      = errors.New("评论内容不能为空")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	userRepo    *repository.UserRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create 创建评论。parent_id 给出时必须指向同一帖子下已存在的评论，
// 父评论必然先于子评论创建，父子关系因此无环。
func (s *CommentService) Create(authorID, postID int64, req *dto.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// 验证帖子存在
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// 如果是回复，验证父评论属于该帖子
	if req.ParentID != nil {
		if _, err := s.commentRepo.GetByIDAndPostID(*req.ParentID, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: req.ParentID,
		Content:  content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// 填充作者信息供展示
	user, err := s.userRepo.GetByID(authorID)
	if err == nil {
		comment.User = user
	}

	return comment, nil
}

// ListTree 获取帖子的评论树。一次平铺查询后按 parent_id 单趟分组，
// 不做逐节点查询；兄弟按 created_at 升序，created_at 相同按 id。
func (s *CommentService) ListTree(postID, actorID int64, actorRole string) ([]*dto.CommentItem, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(postID)
	if err != nil {
		return nil, err
	}

	items := make(map[int64]*dto.CommentItem, len(comments))
	for _, c := range comments {
		items[c.ID] = s.BuildCommentItem(c, actorID, actorRole)
	}

	// 列表整体按 (created_at, id) 升序，父评论必然先于子评论出现，
	// 因此 append 顺序即兄弟顺序
	roots := make([]*dto.CommentItem, 0)
	for _, c := range comments {
		item := items[c.ID]
		if c.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		if parent, ok := items[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, item)
		}
	}

	return roots, nil
}

// Edit 编辑评论。权限每次调用重新计算；受影响行数为 0 说明
// 并发删除已先行提交，此时报告 NotFound，不会更新已删除的行。
func (s *CommentService) Edit(commentID, actorID int64, actorRole, newContent string) (*model.Comment, error) {
	content := strings.TrimSpace(newContent)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if !authz.CanManage(actorRole, actorID, comment.UserID) {
		return nil, ErrCommentPermission
	}

	rows, err := s.commentRepo.UpdateContent(commentID, content)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrCommentNotFound
	}

	updated, err := s.commentRepo.GetByIDWithUser(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete 级联删除评论及其整棵后代子树，一次删除全部成功或全部保留。
// 返回帖子 ID 和被删除的全部评论 ID，供广播和客户端剪枝。
func (s *CommentService) Delete(commentID, actorID int64, actorRole string) (int64, []int64, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrCommentNotFound
		}
		return 0, nil, err
	}

	if !authz.CanManage(actorRole, actorID, comment.UserID) {
		return 0, nil, ErrCommentPermission
	}

	comments, err := s.commentRepo.ListByPostID(comment.PostID)
	if err != nil {
		return 0, nil, err
	}

	children := make(map[int64][]int64, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	// 先序遍历收集子树，创建时保证无环，遍历必然终止
	removed := make([]int64, 0, 1)
	stack := []int64{commentID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		removed = append(removed, id)
		stack = append(stack, children[id]...)
	}

	rows, err := s.commentRepo.DeleteByIDs(removed)
	if err != nil {
		return 0, nil, err
	}
	if rows == 0 {
		// 并发删除已先行完成
		return 0, nil, ErrCommentNotFound
	}

	return comment.PostID, removed, nil
}

// BuildCommentItem 组装评论展示项，can_edit/can_delete 按请求主体计算
func (s *CommentService) BuildCommentItem(c *model.Comment, actorID int64, actorRole string) *dto.CommentItem {
	item := &dto.CommentItem{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CanEdit:   authz.CanManage(actorRole, actorID, c.UserID),
		CanDelete: authz.CanManage(actorRole, actorID, c.UserID),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}

	if c.User != nil {
		item.User = &dto.CommentUser{
			ID:       c.User.ID,
			Username: c.User.Username,
		}
	}

	return item
}
