package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/qs3c/blog_go_server/config"
	"github.com/qs3c/blog_go_server/internal/api"
	"github.com/qs3c/blog_go_server/internal/api/handler"
	"github.com/qs3c/blog_go_server/internal/database"
	"github.com/qs3c/blog_go_server/internal/event"
	"github.com/qs3c/blog_go_server/internal/pkg/oss"
	"github.com/qs3c/blog_go_server/internal/pkg/ws"
	"github.com/qs3c/blog_go_server/internal/repository"
	"github.com/qs3c/blog_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 WebSocket Hub 和事件总线。
	// 事件经 Redis Pub/Sub 广播，每个实例订阅后转发给本地房间。
	wsHub := ws.NewHub()
	bus := event.NewBus(rdb)
	notifier := event.NewNotifier(bus)

	go func() {
		err := bus.Subscribe(context.Background(), func(room string, msg *ws.Message) {
			if err := wsHub.SendToRoom(room, msg); err != nil {
				log.Printf("Failed to deliver event to room %s: %v", room, err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Event subscription stopped: %v", err)
		}
	}()
	log.Println("Event bus subscribed")

	// 初始化 OSS（未配置时图片上传不可用，其余功能不受影响）
	var ossClient *oss.Client
	if cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client initialized")
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	postService := service.NewPostService(postRepo, likeRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, postRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, ossClient)
	commentHandler := handler.NewCommentHandler(commentService, notifier)
	likeHandler := handler.NewLikeHandler(likeService, notifier)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		postHandler,
		commentHandler,
		likeHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
