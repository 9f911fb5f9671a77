package domain

import "time"

// MaxBodyLen cap on a single message body
const MaxBodyLen = 500

// RoomChannel the single global discussion room. Chat is deliberately
// unscoped: every branch and subject shares one feed.
const RoomChannel = "chat:room:global"

// ChatMessage one immutable feed entry. AvatarURL is resolved from the
// author's profile at read time and never stored with the message.
type ChatMessage struct {
	ID              string    `bson:"id" json:"id"`
	AuthorName      string    `bson:"author_name" json:"author_name"`
	AuthorProfileID *string   `bson:"author_profile_id,omitempty" json:"author_profile_id,omitempty"`
	Body            string    `bson:"body" json:"body"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`

	AvatarURL string `bson:"-" json:"avatar_url,omitempty"`
}

// IsOwn report whether the message belongs to the viewer. A viewer without a
// profile owns nothing, even a message just sent under a matching name.
func (m ChatMessage) IsOwn(viewerProfileID *string) bool {
	if viewerProfileID == nil || m.AuthorProfileID == nil {
		return false
	}
	return *m.AuthorProfileID == *viewerProfileID
}

// Action websocket request action
type Action string

const (
	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// History websocket action history, pushed once after connect
	History Action = "history"
	// NotifyMessage websocket action notify_message
	NotifyMessage Action = "notify_message"
)

// WSRequest websocket Request
type WSRequest struct {
	Action      string `json:"action"`
	Content     string `json:"content"`
	DisplayName string `json:"display_name"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
