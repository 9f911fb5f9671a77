package router

import (
	"context"

	"noteshub/internal/chat/app"
	"noteshub/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register chat routes. The feed accepts anonymous viewers, so
// the token is optional here.
func RegisterRoutes(r *fiber.App, chatWebsocket *app.ChatWebsocketHandler) {
	chat := r.Group("/chat", middlewares.OptionalJWTMiddleware())

	chat.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))
}
