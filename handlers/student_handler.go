package handlers

import (
	"encoding/json"
	"log"
	"time"

	"quizz_backend/middleware"
	"quizz_backend/models"
	"quizz_backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{db: db}
}

func (h *StudentHandler) Dashboard(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	type completedRow struct {
		AttemptID   uuid.UUID  `json:"attempt_id"`
		ID          uuid.UUID  `json:"id"`
		Title       string     `json:"title"`
		Score       float64    `json:"score"`
		CompletedAt *time.Time `json:"completed_at"`
	}
	var completed []completedRow
	err := h.db.Raw(`
		SELECT a.id AS attempt_id, q.id, q.title, a.score, a.completed_at
		FROM attempts a
		JOIN quizzes q ON a.quiz_id = q.id
		WHERE a.user_id = ?
		ORDER BY a.completed_at DESC`, userID).Scan(&completed).Error
	if err != nil {
		log.Printf("Error fetching student dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	var available []QuizSummary
	err = h.db.Table("quizzes").
		Select(quizSummarySelect).
		Joins("JOIN users ON users.id = quizzes.created_by_id").
		Where("quizzes.is_published = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM attempts a WHERE a.quiz_id = quizzes.id AND a.user_id = ?)", userID).
		Order("quizzes.created_at DESC").
		Scan(&available).Error
	if err != nil {
		log.Printf("Error fetching available quizzes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type statsRow struct {
		TotalQuizzesTaken int64   `json:"total_quizzes_taken"`
		AverageScore      float64 `json:"average_score"`
		HighestScore      float64 `json:"highest_score"`
	}
	var stats statsRow
	err = h.db.Raw(`
		SELECT COUNT(*) AS total_quizzes_taken,
			COALESCE(AVG(score), 0) AS average_score,
			COALESCE(MAX(score), 0) AS highest_score
		FROM attempts
		WHERE user_id = ?`, userID).Scan(&stats).Error
	if err != nil {
		log.Printf("Error fetching student stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	return c.JSON(fiber.Map{
		"completedQuizzes": completed,
		"availableQuizzes": available,
		"stats":            stats,
	})
}

func (h *StudentHandler) Results(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	type resultRow struct {
		AttemptID   uuid.UUID      `json:"attempt_id"`
		QuizID      uuid.UUID      `json:"quiz_id"`
		Title       string         `json:"title"`
		Score       float64        `json:"score"`
		CompletedAt *time.Time     `json:"completed_at"`
		Answers     datatypes.JSON `json:"answers"`
	}
	var results []resultRow
	err := h.db.Raw(`
		SELECT a.id AS attempt_id, q.id AS quiz_id, q.title, a.score, a.completed_at, a.answers
		FROM attempts a
		JOIN quizzes q ON a.quiz_id = q.id
		WHERE a.user_id = ?
		ORDER BY a.completed_at DESC`, userID).Scan(&results).Error
	if err != nil {
		log.Printf("Error fetching student results: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch results"})
	}

	return c.JSON(fiber.Map{"results": results})
}

// reviewedQuestion is one question of a finished attempt with the student's
// answer laid next to the key.
type reviewedQuestion struct {
	ID            uuid.UUID      `json:"id"`
	QuestionText  string         `json:"question_text"`
	QuestionType  string         `json:"question_type"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"correct_answer"`
	UserAnswer    *string        `json:"user_answer"`
	IsCorrect     bool           `json:"is_correct"`
}

// ResultDetail joins an attempt's stored answers back against the quiz's
// questions. Attempts of other students answer 404.
func (h *StudentHandler) ResultDetail(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)
	attemptID := c.Params("id")

	var attempt models.Attempt
	if err := h.db.Preload("Quiz").
		First(&attempt, "id = ? AND user_id = ?", attemptID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Result not found"})
	}

	var submitted []services.SubmittedAnswer
	if len(attempt.Answers) > 0 {
		if err := json.Unmarshal(attempt.Answers, &submitted); err != nil {
			log.Printf("Error decoding stored answers for attempt %s: %v", attempt.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch result details"})
		}
	}
	answered := make(map[uuid.UUID]string, len(submitted))
	for _, a := range submitted {
		if _, ok := answered[a.QuestionID]; !ok {
			answered[a.QuestionID] = a.Answer
		}
	}

	var questions []models.Question
	if err := h.db.Where("quiz_id = ?", attempt.QuizID).
		Order("position ASC").Find(&questions).Error; err != nil {
		log.Printf("Error fetching questions for attempt %s: %v", attempt.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch result details"})
	}

	reviewed := make([]reviewedQuestion, len(questions))
	for i, q := range questions {
		rq := reviewedQuestion{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
		if answer, ok := answered[q.ID]; ok {
			rq.UserAnswer = &answer
			rq.IsCorrect = services.AnswerCorrect(q.CorrectAnswer, answer)
		}
		reviewed[i] = rq
	}

	return c.JSON(fiber.Map{
		"result": fiber.Map{
			"id":           attempt.ID,
			"quiz_id":      attempt.QuizID,
			"title":        attempt.Quiz.Title,
			"description":  attempt.Quiz.Description,
			"score":        attempt.Score,
			"started_at":   attempt.StartedAt,
			"completed_at": attempt.CompletedAt,
			"questions":    reviewed,
		},
	})
}

func (h *StudentHandler) Leaderboard(c *fiber.Ctx) error {
	type leaderboardRow struct {
		ID           uuid.UUID `json:"id"`
		Username     string    `json:"username"`
		QuizzesTaken int64     `json:"quizzes_taken"`
		AverageScore float64   `json:"average_score"`
		HighestScore float64   `json:"highest_score"`
	}
	var leaderboard []leaderboardRow
	err := h.db.Raw(`
		SELECT u.id, u.username,
			COUNT(a.id) AS quizzes_taken,
			ROUND(AVG(a.score)::numeric, 2) AS average_score,
			MAX(a.score) AS highest_score
		FROM users u
		JOIN attempts a ON u.id = a.user_id
		WHERE u.role = ?
		GROUP BY u.id, u.username
		ORDER BY average_score DESC, quizzes_taken DESC
		LIMIT 20`, models.RoleStudent).Scan(&leaderboard).Error
	if err != nil {
		log.Printf("Error fetching leaderboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch leaderboard"})
	}

	return c.JSON(fiber.Map{"leaderboard": leaderboard})
}
