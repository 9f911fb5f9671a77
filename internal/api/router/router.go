package router

import (
	"noteshub/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes register the shared service routes
// @title SKN NotesHub API
// @version 1.0
// @description API documentation for SKN NotesHub
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)
}
