package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_go_server/internal/api/middleware"
	"github.com/qs3c/blog_go_server/internal/event"
	"github.com/qs3c/blog_go_server/internal/model/dto"
	"github.com/qs3c/blog_go_server/internal/pkg/response"
	"github.com/qs3c/blog_go_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	notifier       *event.Notifier
}

func NewCommentHandler(commentService *service.CommentService, notifier *event.Notifier) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		notifier:       notifier,
	}
}

// List 获取帖子的评论树
// GET /api/v1/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	actorID, actorRole, _ := middleware.GetPrincipal(c)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	items, err := h.commentService.ListTree(postID, actorID, actorRole)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, gin.H{"comments": items})
}

// Create 发表评论或回复
// POST /api/v1/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	actorID, actorRole, ok := middleware.GetPrincipal(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(actorID, postID, &req)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrParentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrEmptyContent:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	// 事务已提交，广播尽力而为
	if h.notifier != nil {
		h.notifier.CommentAdded(comment)
	}

	response.Created(c, "评论成功", h.commentService.BuildCommentItem(comment, actorID, actorRole))
}

// Update 编辑评论
// PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actorID, actorRole, ok := middleware.GetPrincipal(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Edit(commentID, actorID, actorRole, req.Content)
	if err != nil {
		switch err {
		case service.ErrCommentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrCommentPermission:
			response.PermissionError(c, err.Error())
		case service.ErrEmptyContent:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", h.commentService.BuildCommentItem(comment, actorID, actorRole))
}

// Delete 删除评论及其整棵回复子树
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, actorRole, ok := middleware.GetPrincipal(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	postID, removedIDs, err := h.commentService.Delete(commentID, actorID, actorRole)
	if err != nil {
		switch err {
		case service.ErrCommentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrCommentPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	if h.notifier != nil {
		h.notifier.CommentRemoved(postID, removedIDs)
	}

	response.SuccessWithMessage(c, "删除成功", &dto.DeleteCommentResponse{
		RemovedCommentIDs: removedIDs,
	})
}
