package router

import (
	"noteshub/internal/catalog/api/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register catalog routes
func RegisterRoutes(app *fiber.App, resourceHandler *handlers.ResourceHandler) {
	catalog := app.Group("/catalog")
	catalog.Get("/resources/:id/download", resourceHandler.DownloadResource)
	catalog.Get("/:branch/subjects", resourceHandler.Subjects)
	catalog.Get("/:branch/:subject/resources", resourceHandler.ListResources)
	catalog.Post("/:branch/:subject/resources", resourceHandler.UploadResource)
}
