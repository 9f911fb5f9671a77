package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"noteshub/internal/chat/domain"
	"noteshub/internal/chat/repository"
	"noteshub/pkg/logger"
	"noteshub/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler the entry point of the live feed connection
type ChatWebsocketHandler struct {
	messageUC *MessageUseCase
	pubSub    *repository.RedisPubSub
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(messageUC *MessageUseCase, pubSub *repository.RedisPubSub) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		pubSub:    pubSub,
	}
}

// HandleConnection serve one feed viewer until the socket closes.
//
// The subscription attaches before the history snapshot is taken so no insert
// landing after the snapshot is missed; the id-keyed feed drops whatever both
// paths deliver. The viewer's feed state machine is Loading -> Ready once the
// snapshot went out, or Loading -> Error (terminal, reconnect to retry).
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	var profileID *string
	if id, ok := conn.Locals(middlewares.TokenMemberID).(string); ok && id != "" {
		profileID = &id
	}

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	var writeMu sync.Mutex

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.Any("profileID", profileID))
		h.pubSub.DecrOnline(context.Background())
		conn.Close()
		cancel()
	}()

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	online := h.pubSub.IncrOnline(ctxClose)

	// Every arrival path funnels through the id-keyed feed; ready gates the
	// per-event pushes until the history snapshot has been delivered.
	var feedMu sync.Mutex
	feed := domain.NewMessageFeed()
	ready := false

	if err := h.messageUC.Subscribe(ctxClose, func(msg domain.ChatMessage) {
		feedMu.Lock()
		inserted := feed.Insert(msg)
		deliver := inserted && ready
		feedMu.Unlock()
		if !deliver {
			return
		}
		h.sendResponse(conn, &writeMu, domain.WSResponse{
			Action:  string(domain.NotifyMessage),
			Success: true,
			Payload: messagePayload(msg, profileID),
		})
	}); err != nil {
		logger.Log.Errorf("subscribe failed:", err)
		h.sendResponse(conn, &writeMu, domain.WSResponse{
			Action: string(domain.History),
			Error:  "subscription unavailable",
		})
		return
	}

	history, err := h.messageUC.LoadHistory(ctxClose)
	if err != nil {
		// terminal for this activation, the feed stays empty
		h.sendResponse(conn, &writeMu, domain.WSResponse{
			Action: string(domain.History),
			Error:  err.Error(),
		})
		return
	}

	feedMu.Lock()
	for _, msg := range history {
		feed.Insert(msg)
	}
	ready = true
	snapshot := feed.All()
	feedMu.Unlock()

	payloadMsgs := make([]map[string]interface{}, 0, len(snapshot))
	for _, msg := range snapshot {
		payloadMsgs = append(payloadMsgs, messagePayload(msg, profileID))
	}
	h.sendResponse(conn, &writeMu, domain.WSResponse{
		Action:  string(domain.History),
		Success: true,
		Payload: map[string]interface{}{
			"messages": payloadMsgs,
			"online":   online,
		},
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				writeMu.Lock()
				err := conn.WriteMessage(websocket.PingMessage, []byte("ping message"))
				writeMu.Unlock()
				if err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("Read error:", err)
			}
			return
		}

		var req domain.WSRequest
		if err := json.Unmarshal(message, &req); err != nil {
			h.sendResponse(conn, &writeMu, domain.WSResponse{
				Action: req.Action,
				Error:  "invalid request payload",
			})
			continue
		}

		switch domain.Action(req.Action) {
		case domain.SendMessage:
			identity := h.messageUC.ResolveSenderIdentity(ctxClose, profileID, req.DisplayName)
			msgID, err := h.messageUC.SendMessage(ctxClose, req.Content, identity)
			if errors.Is(err, ErrEmptyBody) {
				// blank send: silently ignored, no ack either way
				continue
			}
			if err != nil {
				// the client keeps its input on failure
				h.sendResponse(conn, &writeMu, domain.WSResponse{
					Action: string(domain.SendMessage),
					Error:  err.Error(),
				})
				continue
			}
			// ack clears the input; the message itself arrives via notify
			h.sendResponse(conn, &writeMu, domain.WSResponse{
				Action:  string(domain.SendMessage),
				Success: true,
				Payload: map[string]interface{}{"message_id": msgID},
			})
		default:
			h.sendResponse(conn, &writeMu, domain.WSResponse{
				Action: req.Action,
				Error:  "unknown action",
			})
		}
	}
}

func (h *ChatWebsocketHandler) sendResponse(conn *websocket.Conn, writeMu *sync.Mutex, resp domain.WSResponse) {
	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.WriteJSON(resp); err != nil {
		logger.Log.Errorf("write response error:", err)
	}
}

// messagePayload shape one message for the wire, with the per-viewer
// ownership flag resolved server side
func messagePayload(msg domain.ChatMessage, viewerProfileID *string) map[string]interface{} {
	payload := map[string]interface{}{
		"message_id":  msg.ID,
		"author_name": msg.AuthorName,
		"body":        msg.Body,
		"created_at":  msg.CreatedAt,
		"own":         msg.IsOwn(viewerProfileID),
	}
	if msg.AuthorProfileID != nil {
		payload["author_profile_id"] = *msg.AuthorProfileID
	}
	if msg.AvatarURL != "" {
		payload["avatar_url"] = msg.AvatarURL
	}
	return payload
}
