package routes

import (
	"quizz_backend/handlers"
	"quizz_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func QuizRoutes(app *fiber.App, db *gorm.DB) {
	h := handlers.NewQuizHandler(db)

	quizzes := app.Group("/api/quizzes", middleware.Protected())
	quizzes.Get("/", h.ListQuizzes)
	quizzes.Get("/:id", h.GetQuiz)
	quizzes.Post("/:id/submit", h.SubmitQuiz)
}
