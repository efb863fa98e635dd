package routes

import (
	"quizz_backend/handlers"
	"quizz_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewAuthHandler(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/profile", middleware.Protected(), h.Profile)
}
