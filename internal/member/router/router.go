package router

import (
	"noteshub/internal/member/app"
	"noteshub/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register member routes
func RegisterRoutes(r *fiber.App, memberHandler *app.MemberHandler) {
	memberRoutes := r.Group("/member")
	memberRoutes.Post("/register", memberHandler.Register)
	memberRoutes.Post("/login", memberHandler.Login)

	memberRoutes.Use(middlewares.JWTMiddleware())
	memberRoutes.Post("/logout", memberHandler.Logout)
	memberRoutes.Get("/profile", memberHandler.GetProfile)
	memberRoutes.Put("/profile", memberHandler.UpdateProfile)
	memberRoutes.Post("/profile/avatar", memberHandler.UploadAvatar)
}
