package event

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/pkg/ws"
)

var testComment = model.Comment{
	ID:        3,
	PostID:    7,
	UserID:    2,
	Content:   "hello",
	CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

type received struct {
	room string
	msg  *ws.Message
}

func setupBus(t *testing.T) (*Bus, chan received, context.CancelFunc) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	bus := NewBus(client)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan received, 16)
	go func() {
		_ = bus.Subscribe(ctx, func(room string, msg *ws.Message) {
			ch <- received{room: room, msg: msg}
		})
	}()
	// Give the subscriber a moment to attach
	time.Sleep(50 * time.Millisecond)

	return bus, ch, cancel
}

func waitEvent(t *testing.T, ch chan received) received {
	t.Helper()

	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return received{}
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus, ch, cancel := setupBus(t)
	defer cancel()

	err := bus.Publish(context.Background(), "post_1", TypeLikeUpdated, &LikeUpdatedPayload{
		PostID:    1,
		LikeCount: 5,
	})
	require.NoError(t, err)

	got := waitEvent(t, ch)
	assert.Equal(t, "post_1", got.room)
	assert.Equal(t, TypeLikeUpdated, got.msg.Type)

	data, ok := got.msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["post_id"])
	assert.Equal(t, float64(5), data["like_count"])
}

func TestBus_MalformedPayloadIgnored(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	bus := NewBus(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan received, 16)
	go func() {
		_ = bus.Subscribe(ctx, func(room string, msg *ws.Message) {
			ch <- received{room: room, msg: msg}
		})
	}()
	time.Sleep(50 * time.Millisecond)

	// Garbage on the channel must not kill the subscriber
	require.NoError(t, client.Publish(ctx, Channel, "not-json").Err())

	require.NoError(t, bus.Publish(ctx, "post_2", TypeCommentRemoved, &CommentRemovedPayload{
		PostID:            2,
		RemovedCommentIDs: []int64{10, 11},
	}))

	got := waitEvent(t, ch)
	assert.Equal(t, "post_2", got.room)
	assert.Equal(t, TypeCommentRemoved, got.msg.Type)
}

func TestNotifier_CommentAdded(t *testing.T) {
	bus, ch, cancel := setupBus(t)
	defer cancel()

	notifier := NewNotifier(bus)
	notifier.CommentAdded(&testComment)

	got := waitEvent(t, ch)
	assert.Equal(t, "post_7", got.room)
	assert.Equal(t, TypeCommentAdded, got.msg.Type)

	data := got.msg.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["post_id"])
	assert.Equal(t, float64(3), data["comment_id"])
	assert.Equal(t, float64(2), data["author_id"])
	assert.Equal(t, "hello", data["content"])
	assert.NotEmpty(t, data["created_at"])
}

func TestNotifier_LikeNotification(t *testing.T) {
	bus, ch, cancel := setupBus(t)
	defer cancel()

	notifier := NewNotifier(bus)
	notifier.LikeNotification(9, 7, 2)

	got := waitEvent(t, ch)
	assert.Equal(t, "user_9", got.room)
	assert.Equal(t, TypeLikeNotification, got.msg.Type)

	data := got.msg.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["post_id"])
	assert.Equal(t, float64(2), data["liker_id"])
}

func TestNotifier_SelfLikeSuppressed(t *testing.T) {
	bus, ch, cancel := setupBus(t)
	defer cancel()

	notifier := NewNotifier(bus)

	// Owner likes their own post: no notification
	notifier.LikeNotification(9, 7, 9)

	// A follow-up event proves the suppressed one never arrived
	notifier.LikeUpdated(7, 1)

	got := waitEvent(t, ch)
	assert.Equal(t, TypeLikeUpdated, got.msg.Type)
	assert.Equal(t, "post_7", got.room)
	assert.Empty(t, ch)
}
