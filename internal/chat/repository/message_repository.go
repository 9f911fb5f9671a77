package repository

import (
	"context"

	"noteshub/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition chat message persistence
type MessageRepository interface {
	// InsertMessage append one message to the global room
	InsertMessage(ctx context.Context, msg *domain.ChatMessage) error
	// ListAscending the full history, created_at ascending
	ListAscending(ctx context.Context) ([]domain.ChatMessage, error)
}

type chatMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoChatMessageRepository create a MessageRepository
func NewMongoChatMessageRepository(db *mongo.Database) MessageRepository {
	return &chatMessageRepository{
		coll: db.Collection("chat_messages"),
	}
}

func (r *chatMessageRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *chatMessageRepository) ListAscending(ctx context.Context) ([]domain.ChatMessage, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	messages := []domain.ChatMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
