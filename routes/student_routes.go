package routes

import (
	"quizz_backend/handlers"
	"quizz_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewStudentHandler(db)

	student := app.Group("/api/student", middleware.Protected(), middleware.StudentRequired())
	student.Get("/dashboard", h.Dashboard)
	student.Get("/results", h.Results)
	student.Get("/results/:id", h.ResultDetail)
	student.Get("/leaderboard", h.Leaderboard)
}
