package handler

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_go_server/internal/api/middleware"
	"github.com/qs3c/blog_go_server/internal/model/dto"
	"github.com/qs3c/blog_go_server/internal/pkg/oss"
	"github.com/qs3c/blog_go_server/internal/pkg/response"
	"github.com/qs3c/blog_go_server/internal/service"
)

// 帖子配图限制
const maxImageSize = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type PostHandler struct {
	postService *service.PostService
	ossClient   *oss.Client
}

func NewPostHandler(postService *service.PostService, ossClient *oss.Client) *PostHandler {
	return &PostHandler{
		postService: postService,
		ossClient:   ossClient,
	}
}

// Create 创建帖子
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(userID, &req, "", "")
	if err != nil {
		switch err {
		case service.ErrEmptyTitle, service.ErrEmptyContent:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, "发布成功", gin.H{"post_id": post.ID})
}

// List 获取帖子列表
// GET /api/v1/posts?page=1&page_size=20&search=xxx
func (h *PostHandler) List(c *gin.Context) {
	actorID, actorRole, _ := middleware.GetPrincipal(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.postService.List(page, pageSize, search, actorID, actorRole)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 获取帖子详情
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	actorID, actorRole, _ := middleware.GetPrincipal(c)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	item, err := h.postService.Get(postID, actorID, actorRole)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Update 编辑帖子
// PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
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

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Update(postID, actorID, actorRole, &req, "", "")
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPostPermission:
			response.PermissionError(c, err.Error())
		case service.ErrEmptyTitle, service.ErrEmptyContent:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", gin.H{"post_id": post.ID})
}

// Delete 删除帖子，级联删除其评论和点赞
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
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

	post, err := h.postService.Delete(postID, actorID, actorRole)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPostPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	// 图片清理尽力而为，失败不影响删除结果
	if post.ImageKey != "" && h.ossClient != nil {
		_ = h.ossClient.Delete(post.ImageKey)
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// UploadImage 上传帖子配图，上传成功后替换帖子的图片地址
// POST /api/v1/posts/:id/image
func (h *PostHandler) UploadImage(c *gin.Context) {
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

	if h.ossClient == nil {
		response.ServerError(c, "图片存储未配置")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ParamError(c, "请上传图片文件")
		return
	}

	if fileHeader.Size > maxImageSize {
		response.ParamError(c, "图片大小不能超过5MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		response.ParamError(c, "不支持的图片格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	imageURL, imageKey, err := h.ossClient.UploadPostImage(actorID, data, ext)
	if err != nil {
		response.ServerError(c, "图片上传失败")
		return
	}

	post, err := h.postService.Update(postID, actorID, actorRole, &dto.UpdatePostRequest{}, imageURL, imageKey)
	if err != nil {
		// 入库失败时回收已上传的对象
		_ = h.ossClient.Delete(imageKey)
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPostPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", gin.H{
		"post_id":   post.ID,
		"image_url": post.ImageURL,
	})
}
