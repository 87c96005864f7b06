package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/qs3c/blog_go_server/internal/pkg/ws"
)

const Channel = "blog_events"

// Envelope 跨实例事件信封：房间 + 事件名 + 负载
type Envelope struct {
	Room string          `json:"room"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Bus 基于 Redis Pub/Sub 的事件总线，每个服务实例订阅后转发给本地 Hub
type Bus struct {
	client *redis.Client
}

func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

// Publish 发布一条房间事件
func (b *Bus) Publish(ctx context.Context, room, eventType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	env := Envelope{
		Room: room,
		Type: eventType,
		Data: raw,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	return b.client.Publish(ctx, Channel, payload).Err()
}

// Subscribe 订阅事件并逐条回调，ctx 取消后返回
func (b *Bus) Subscribe(ctx context.Context, handler func(room string, msg *ws.Message)) error {
	pubsub := b.client.Subscribe(ctx, Channel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue // 忽略解析错误
			}

			var data interface{}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				continue
			}

			handler(env.Room, &ws.Message{Type: env.Type, Data: data})
		}
	}
}
