package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "post_42", PostRoom(42))
	assert.Equal(t, "user_7", UserRoom(7))
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.Equal(t, 0, hub.RoomSize("post_1"))
}

func TestHub_IsOnline_NoConnections(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(123))
}

func TestHub_SendToRoom_EmptyRoom(t *testing.T) {
	hub := NewHub()

	msg := &Message{
		Type: "comment_added",
		Data: map[string]string{"key": "value"},
	}

	// Broadcasting to a room with no members is a silent no-op
	err := hub.SendToRoom("post_1", msg)
	assert.NoError(t, err)
}

func TestHub_SendToUser_UserNotOnline(t *testing.T) {
	hub := NewHub()

	err := hub.SendToUser(123, &Message{Type: "like_notification"})
	assert.NoError(t, err)
}

func TestHub_JoinLeaveRoom(t *testing.T) {
	hub := NewHub()
	client := &Client{UserID: 1}

	hub.Register(client)
	hub.JoinRoom("post_5", client)
	assert.Equal(t, 1, hub.RoomSize("post_5"))

	hub.LeaveRoom("post_5", client)
	assert.Equal(t, 0, hub.RoomSize("post_5"))
}

func TestHub_Unregister_LeavesAllRooms(t *testing.T) {
	hub := NewHub()
	client := &Client{UserID: 1}

	hub.Register(client)
	hub.JoinRoom("post_5", client)
	hub.JoinRoom("user_1", client)

	hub.Unregister(client)

	assert.Equal(t, 0, hub.RoomSize("post_5"))
	assert.Equal(t, 0, hub.RoomSize("user_1"))
	assert.False(t, hub.IsOnline(1))
}

func TestHub_WithRealWebSocket(t *testing.T) {
	hub := NewHub()

	registered := make(chan *Client, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}

		client := &Client{
			UserID: 100,
			Conn:   conn,
		}
		hub.Register(client)
		hub.JoinRoom("post_9", client)
		registered <- client
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var client *Client
	select {
	case client = <-registered:
	case <-time.After(time.Second):
		t.Fatal("client was not registered")
	}

	assert.True(t, hub.IsOnline(100))
	assert.Equal(t, 1, hub.ConnectionCount())
	assert.Equal(t, 1, hub.RoomSize("post_9"))

	// Room broadcast should reach the connected client
	err = hub.SendToRoom("post_9", &Message{
		Type: "like_updated",
		Data: map[string]interface{}{"post_id": 9, "like_count": 3},
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Message
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "like_updated", got.Type)

	data, ok := got.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), data["like_count"])

	hub.Unregister(client)
	assert.False(t, hub.IsOnline(100))
	assert.Equal(t, 0, hub.RoomSize("post_9"))
}

func TestHub_MultipleConnectionsSameUser(t *testing.T) {
	hub := NewHub()

	c1 := &Client{UserID: 1}
	c2 := &Client{UserID: 1}

	hub.Register(c1)
	hub.Register(c2)
	assert.Equal(t, 2, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1))

	hub.Unregister(c1)
	assert.True(t, hub.IsOnline(1))

	hub.Unregister(c2)
	assert.False(t, hub.IsOnline(1))
}
