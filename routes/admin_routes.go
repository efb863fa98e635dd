package routes

import (
	"quizz_backend/handlers"
	"quizz_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewAdminHandler(db)

	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard", h.Dashboard)
	admin.Get("/users", h.ListUsers)
	admin.Post("/users", h.CreateUser)
	admin.Put("/users/:id", h.UpdateUser)
	admin.Delete("/users/:id", h.DeleteUser)
	admin.Delete("/quizzes/:id", h.DeleteQuiz)
}
