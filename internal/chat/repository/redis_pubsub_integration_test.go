package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"noteshub/internal/chat/domain"
	"noteshub/pkg/logger"
	testtool "noteshub/pkg/test_tool"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("INTEGRATION_TEST not set, skipping container test")
	}

	logger.SetNewNop()
	ctx := context.Background()

	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "redis:latest",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port)})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}
	return client
}

func TestRedisPubSub_SubscribeAndCancel(t *testing.T) {
	client := setupRedis(t)
	pubSub := NewRedisPubSub(client)

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan domain.ChatMessage, 8)

	err := pubSub.Subscribe(ctx, domain.RoomChannel, func(msg domain.ChatMessage) {
		received <- msg
	})
	assert.NoError(t, err)

	// redis delivers nothing to subscribers attached after publish; give the
	// subscription a moment to settle
	time.Sleep(500 * time.Millisecond)

	sent := domain.ChatMessage{ID: "m1", AuthorName: "ryan", Body: "hello", CreatedAt: time.Now().UTC()}
	assert.NoError(t, pubSub.Publish(domain.RoomChannel, sent))

	select {
	case got := <-received:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, sent.Body, got.Body)
	case <-time.After(5 * time.Second):
		t.Fatal("message never delivered")
	}

	// after cancel the subscription is released; late events go nowhere
	cancel()
	time.Sleep(500 * time.Millisecond)

	assert.NoError(t, pubSub.Publish(domain.RoomChannel, domain.ChatMessage{ID: "m2", Body: "late"}))

	select {
	case got := <-received:
		t.Fatalf("received %q after cancel", got.ID)
	case <-time.After(2 * time.Second):
	}
}

func TestRedisPubSub_PresenceCounter(t *testing.T) {
	client := setupRedis(t)
	pubSub := NewRedisPubSub(client)
	ctx := context.Background()

	first := pubSub.IncrOnline(ctx)
	second := pubSub.IncrOnline(ctx)
	assert.Equal(t, first+1, second)

	pubSub.DecrOnline(ctx)
	third := pubSub.IncrOnline(ctx)
	assert.Equal(t, second, third)
}
