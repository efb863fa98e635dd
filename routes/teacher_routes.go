package routes

import (
	"quizz_backend/handlers"
	"quizz_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TeacherRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewTeacherHandler(db)

	teacher := app.Group("/api/teacher", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("/dashboard", h.Dashboard)
	teacher.Post("/quizzes", h.CreateQuiz)
	teacher.Put("/quizzes/:id", h.UpdateQuiz)
	teacher.Delete("/quizzes/:id", h.DeleteQuiz)
	teacher.Get("/quizzes/:id/results", h.QuizResults)
}
