package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/qs3c/blog_go_server/internal/pkg/jwt"
	"github.com/qs3c/blog_go_server/internal/pkg/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// controlMessage 客户端控制消息，用于订阅/退订帖子房间
type controlMessage struct {
	Action string `json:"action"`
	PostID int64  `json:"post_id"`
}

type WebSocketHandler struct {
	hub       *ws.Hub
	jwtSecret string
}

func NewWebSocketHandler(hub *ws.Hub, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// Handle WebSocket 连接处理。身份在握手时解析一次，连接期间不变。
// 连接自动加入本人的 user 房间，帖子房间由控制消息加入/退出。
// GET /api/v1/ws?token=xxx
func (h *WebSocketHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := jwt.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &ws.Client{
		UserID: claims.UserID,
		Role:   claims.Role,
		Conn:   conn,
	}

	h.hub.Register(client)
	h.hub.JoinRoom(ws.UserRoom(claims.UserID), client)

	go h.readLoop(client, conn)
}

func (h *WebSocketHandler) readLoop(client *ws.Client, conn *websocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// 无法解析的消息直接忽略
			continue
		}

		switch msg.Action {
		case "join_post":
			if msg.PostID > 0 {
				h.hub.JoinRoom(ws.PostRoom(msg.PostID), client)
			}
		case "leave_post":
			if msg.PostID > 0 {
				h.hub.LeaveRoom(ws.PostRoom(msg.PostID), client)
			}
		}
	}
}
