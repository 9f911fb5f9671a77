package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"noteshub/internal/chat/domain"
	memberdomain "noteshub/internal/member/domain"
	"noteshub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

func TestMessageUseCase_SendMessage(t *testing.T) {
	ctx := context.Background()
	profileID := "profile-1"

	mockMsgRepo := new(MockMessageRepository)
	mockPubSub := new(MockRedisPubSub)

	mockMsgRepo.On("InsertMessage", ctx, mock.Anything).Return(nil)
	mockPubSub.On("Publish", domain.RoomChannel, mock.Anything).Return(nil)

	uc := NewMessageUseCase(mockMsgRepo, new(MockProfileRepository), mockPubSub)
	msgID, err := uc.SendMessage(ctx, "Hello, world!", domain.Identity{Name: "ryan", ProfileID: &profileID})

	assert.NoError(t, err)
	assert.NotEmpty(t, msgID)

	published := mockPubSub.Calls[0].Arguments.Get(1).(domain.ChatMessage)
	assert.Equal(t, msgID, published.ID)
	assert.Equal(t, "ryan", published.AuthorName)
	assert.Equal(t, &profileID, published.AuthorProfileID)

	mockMsgRepo.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
}

func TestMessageUseCase_SendMessage_EmptyBody(t *testing.T) {
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	mockPubSub := new(MockRedisPubSub)

	uc := NewMessageUseCase(mockMsgRepo, new(MockProfileRepository), mockPubSub)

	// whitespace-only body is a silent no-op: nothing stored, nothing published
	_, err := uc.SendMessage(ctx, "   \n\t ", domain.Identity{Name: "ryan"})
	assert.ErrorIs(t, err, ErrEmptyBody)

	mockMsgRepo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
	mockPubSub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestMessageUseCase_SendMessage_TooLong(t *testing.T) {
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	uc := NewMessageUseCase(mockMsgRepo, new(MockProfileRepository), new(MockRedisPubSub))

	body := make([]byte, domain.MaxBodyLen+1)
	for i := range body {
		body[i] = 'x'
	}

	_, err := uc.SendMessage(ctx, string(body), domain.Identity{Name: "ryan"})
	assert.Error(t, err)
	mockMsgRepo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
}

func TestMessageUseCase_SendMessage_PublishFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	mockPubSub := new(MockRedisPubSub)

	mockMsgRepo.On("InsertMessage", ctx, mock.Anything).Return(nil)
	mockPubSub.On("Publish", domain.RoomChannel, mock.Anything).Return(errors.New("redis down"))

	uc := NewMessageUseCase(mockMsgRepo, new(MockProfileRepository), mockPubSub)
	msgID, err := uc.SendMessage(ctx, "still stored", domain.Identity{Name: "ryan"})

	// the row exists, readers pick it up on their next history load
	assert.NoError(t, err)
	assert.NotEmpty(t, msgID)
}

func TestMessageUseCase_LoadHistory(t *testing.T) {
	ctx := context.Background()
	profileID := "profile-1"
	avatar := "http://cdn/avatars/profile-1.png"
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mockMsgRepo := new(MockMessageRepository)
	mockProfileRepo := new(MockProfileRepository)

	history := []domain.ChatMessage{
		{ID: "m1", AuthorName: "ryan", AuthorProfileID: &profileID, Body: "hi", CreatedAt: base},
		{ID: "m2", AuthorName: "Anonymous", Body: "hello", CreatedAt: base.Add(time.Minute)},
	}
	mockMsgRepo.On("ListAscending", ctx).Return(history, nil)
	mockProfileRepo.On("GetByID", ctx, profileID).Return(&memberdomain.Profile{
		ID: profileID, Username: "ryan", AvatarURL: &avatar,
	}, nil)

	uc := NewMessageUseCase(mockMsgRepo, mockProfileRepo, new(MockRedisPubSub))
	got, err := uc.LoadHistory(ctx)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, avatar, got[0].AvatarURL)
	assert.Empty(t, got[1].AvatarURL)
}

func TestMessageUseCase_LoadHistory_RepoError(t *testing.T) {
	ctx := context.Background()

	mockMsgRepo := new(MockMessageRepository)
	mockMsgRepo.On("ListAscending", ctx).Return(nil, errors.New("mongo down"))

	uc := NewMessageUseCase(mockMsgRepo, new(MockProfileRepository), new(MockRedisPubSub))
	got, err := uc.LoadHistory(ctx)

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestMessageUseCase_ResolveSenderIdentity(t *testing.T) {
	ctx := context.Background()
	profileID := "profile-1"

	mockProfileRepo := new(MockProfileRepository)
	mockProfileRepo.On("GetByID", ctx, profileID).Return(&memberdomain.Profile{
		ID: profileID, Username: "ryan",
	}, nil)

	uc := NewMessageUseCase(new(MockMessageRepository), mockProfileRepo, new(MockRedisPubSub))

	// profile name wins over whatever the client typed
	id := uc.ResolveSenderIdentity(ctx, &profileID, "typed-name")
	assert.Equal(t, "ryan", id.Name)
	assert.Equal(t, &profileID, id.ProfileID)

	id = uc.ResolveSenderIdentity(ctx, nil, "typed-name")
	assert.Equal(t, "typed-name", id.Name)
	assert.Nil(t, id.ProfileID)

	id = uc.ResolveSenderIdentity(ctx, nil, "")
	assert.Equal(t, domain.AnonymousName, id.Name)
}

func TestMessageUseCase_Subscribe_EnrichesAvatar(t *testing.T) {
	ctx := context.Background()
	profileID := "profile-1"
	avatar := "http://cdn/avatars/profile-1.png"

	mockProfileRepo := new(MockProfileRepository)
	mockProfileRepo.On("GetByID", ctx, profileID).Return(&memberdomain.Profile{
		ID: profileID, Username: "ryan", AvatarURL: &avatar,
	}, nil)

	var handler func(msg domain.ChatMessage)
	mockPubSub := new(MockRedisPubSub)
	mockPubSub.On("Subscribe", domain.RoomChannel, mock.Anything).
		Run(func(args mock.Arguments) {
			handler = args.Get(1).(func(msg domain.ChatMessage))
		}).Return(nil)

	uc := NewMessageUseCase(new(MockMessageRepository), mockProfileRepo, mockPubSub)

	var got domain.ChatMessage
	err := uc.Subscribe(ctx, func(msg domain.ChatMessage) { got = msg })
	assert.NoError(t, err)

	handler(domain.ChatMessage{ID: "m1", AuthorProfileID: &profileID})
	assert.Equal(t, avatar, got.AvatarURL)
}
