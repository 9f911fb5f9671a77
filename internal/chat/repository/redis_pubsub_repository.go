package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"noteshub/internal/chat/domain"
	"noteshub/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PubSub definition realtime message fan-out
type PubSub interface {
	Publish(channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string, handler func(msg domain.ChatMessage)) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish serialize message and publish to channel
func (r *RedisPubSub) Publish(channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe listen on channel and hand every decoded message to handler.
// Cancelling ctx closes the subscription; events arriving after that are
// dropped with the channel, never delivered to a dead handler.
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(msg domain.ChatMessage)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var result domain.ChatMessage
				if err := json.Unmarshal([]byte(m.Payload), &result); err != nil {
					logger.Log.Error("pubsub decode err :", zap.String("err", fmt.Sprintf("failed to unmarshal message: %v", err)))
					continue
				}

				handler(result)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}

// presenceKey advisory online counter for the global room
const presenceKey = "chat:room:global:online"

// IncrOnline best-effort presence bump on attach
func (r *RedisPubSub) IncrOnline(ctx context.Context) int64 {
	n, err := r.client.Incr(ctx, presenceKey).Result()
	if err != nil {
		logger.Log.Warn("presence incr failed", zap.Error(err))
		return 0
	}
	return n
}

// DecrOnline best-effort presence drop on detach
func (r *RedisPubSub) DecrOnline(ctx context.Context) {
	if err := r.client.Decr(ctx, presenceKey).Err(); err != nil {
		logger.Log.Warn("presence decr failed", zap.Error(err))
	}
}
