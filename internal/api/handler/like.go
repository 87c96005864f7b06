package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_go_server/internal/api/middleware"
	"github.com/qs3c/blog_go_server/internal/event"
	"github.com/qs3c/blog_go_server/internal/pkg/response"
	"github.com/qs3c/blog_go_server/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
	notifier    *event.Notifier
}

func NewLikeHandler(likeService *service.LikeService, notifier *event.Notifier) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		notifier:    notifier,
	}
}

// Toggle 点赞切换，已点赞则取消
// POST /api/v1/posts/:id/like
func (h *LikeHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	result, post, err := h.likeService.Toggle(userID, postID)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	if h.notifier != nil {
		h.notifier.LikeUpdated(postID, result.LikeCount)
		if result.Liked {
			h.notifier.LikeNotification(post.AuthorID, postID, userID)
		}
	}

	if result.Liked {
		response.Created(c, "点赞成功", result)
		return
	}
	response.SuccessWithMessage(c, "已取消点赞", result)
}
