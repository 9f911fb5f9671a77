package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"noteshub/internal/chat/domain"
	"noteshub/internal/chat/repository"
	memberrepo "noteshub/internal/member/repository"
	errprocess "noteshub/pkg/err"
	"noteshub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyBody sentinel: a blank send is a no-op, not a failure. No store
// call happens and nothing is published.
var ErrEmptyBody = fmt.Errorf("empty message body")

// MessageUseCase the message feed flow: pull history, push live inserts,
// accept sends
type MessageUseCase struct {
	msgRepo     repository.MessageRepository
	profileRepo memberrepo.ProfileRepository
	pubSub      repository.PubSub
}

// NewMessageUseCase build a new MessageUseCase
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	profileRepo memberrepo.ProfileRepository,
	pubSub repository.PubSub,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:     msgRepo,
		profileRepo: profileRepo,
		pubSub:      pubSub,
	}
}

// LoadHistory fetch the full feed ascending by created_at, avatars resolved.
// A failed fetch leaves the caller with nothing: no partial history is ever
// handed out.
func (uc *MessageUseCase) LoadHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	messages, err := uc.msgRepo.ListAscending(ctx)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("load chat history failed : %v", err))
	}
	for i := range messages {
		uc.resolveAvatar(ctx, &messages[i])
	}
	return messages, nil
}

// Subscribe attach to the global room. Every delivered insert is
// avatar-enriched before onMessage sees it. Cancelling ctx detaches; events
// after that never reach onMessage.
func (uc *MessageUseCase) Subscribe(ctx context.Context, onMessage func(msg domain.ChatMessage)) error {
	return uc.pubSub.Subscribe(ctx, domain.RoomChannel, func(msg domain.ChatMessage) {
		uc.resolveAvatar(ctx, &msg)
		onMessage(msg)
	})
}

// SendMessage insert a message attributed to identity, then broadcast it.
// The sender gets no echo here: their own message arrives back through the
// subscription like everyone else's.
func (uc *MessageUseCase) SendMessage(ctx context.Context, body string, identity domain.Identity) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyBody
	}
	if len(body) > domain.MaxBodyLen {
		return "", errprocess.Set(fmt.Sprintf("message exceeds %d characters", domain.MaxBodyLen))
	}

	msg := domain.ChatMessage{
		ID:              uuid.New().String(),
		AuthorName:      identity.Name,
		AuthorProfileID: identity.ProfileID,
		Body:            body,
		CreatedAt:       time.Now().UTC(),
	}

	if err := uc.msgRepo.InsertMessage(ctx, &msg); err != nil {
		return "", errprocess.Set(fmt.Sprintf("insert chat message failed : %v", err))
	}

	if err := uc.pubSub.Publish(domain.RoomChannel, msg); err != nil {
		// the row exists; subscribers catch up on their next history load
		logger.Log.Error("publish chat message failed", zap.String("message_id", msg.ID), zap.Error(err))
	}

	return msg.ID, nil
}

// ResolveSenderIdentity decide who a send is attributed to. A signed-in
// viewer whose profile resolves wins; otherwise the ephemeral display name,
// otherwise "Anonymous".
func (uc *MessageUseCase) ResolveSenderIdentity(ctx context.Context, profileID *string, ephemeralName string) domain.Identity {
	var profileName string
	if profileID != nil {
		if profile, err := uc.profileRepo.GetByID(ctx, *profileID); err == nil {
			profileName = profile.Username
		}
	}
	return domain.ResolveIdentity(profileID, profileName, ephemeralName)
}

// resolveAvatar enrich a message with its author's avatar. A missing profile
// or lookup failure means "no avatar", never an error for the message.
func (uc *MessageUseCase) resolveAvatar(ctx context.Context, msg *domain.ChatMessage) {
	if msg.AuthorProfileID == nil {
		return
	}
	profile, err := uc.profileRepo.GetByID(ctx, *msg.AuthorProfileID)
	if err != nil || profile.AvatarURL == nil {
		return
	}
	msg.AvatarURL = *profile.AvatarURL
}
