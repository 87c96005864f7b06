package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/blog_go_server/config"
	"github.com/qs3c/blog_go_server/internal/api/handler"
	"github.com/qs3c/blog_go_server/internal/api/middleware"
)

type Router struct {
	authHandler      *handler.AuthHandler
	postHandler      *handler.PostHandler
	commentHandler   *handler.CommentHandler
	likeHandler      *handler.LikeHandler
	websocketHandler *handler.WebSocketHandler
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		postHandler:      postHandler,
		commentHandler:   commentHandler,
		likeHandler:      likeHandler,
		websocketHandler: websocketHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket，token 在握手时校验
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 帖子与评论 - 公开读取（可选认证，登录后附带 can_edit 等标记）
		public := api.Group("")
		public.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			public.GET("/posts", r.postHandler.List)
			public.GET("/posts/:id", r.postHandler.Get)
			public.GET("/posts/:id/comments", r.commentHandler.List)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 帖子
			authenticated.POST("/posts", r.postHandler.Create)
			authenticated.PUT("/posts/:id", r.postHandler.Update)
			authenticated.DELETE("/posts/:id", r.postHandler.Delete)
			authenticated.POST("/posts/:id/image", r.postHandler.UploadImage)

			// 评论
			authenticated.POST("/posts/:id/comments", r.commentHandler.Create)
			authenticated.PUT("/comments/:id", r.commentHandler.Update)
			authenticated.DELETE("/comments/:id", r.commentHandler.Delete)

			// 点赞
			authenticated.POST("/posts/:id/like", r.likeHandler.Toggle)
		}
	}

	return engine
}
