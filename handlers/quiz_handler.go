package handlers

import (
	"encoding/json"
	"errors"
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

// Submission failures inside the transaction, mapped to statuses afterwards.
var (
	errQuizNotAvailable = errors.New("quiz not found or not available")
	errAlreadyAttempted = errors.New("quiz already attempted")
	errQuizEmpty        = errors.New("quiz has no questions")
)

type QuizHandler struct {
	db *gorm.DB
}

func NewQuizHandler(db *gorm.DB) *QuizHandler {
	return &QuizHandler{db: db}
}

// QuizSummary is a quiz row joined with its creator's username, the shape
// the dashboards and listings render.
type QuizSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CreatedByID   uuid.UUID `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	IsPublished   bool      `json:"is_published"`
	TimeLimit     *int      `json:"time_limit"`
	CreatedAt     time.Time `json:"created_at"`
}

const quizSummarySelect = "quizzes.id, quizzes.title, quizzes.description, quizzes.created_by_id, users.username AS created_by_name, quizzes.is_published, quizzes.time_limit, quizzes.created_at"

// ListQuizzes returns the quizzes visible to the caller: students see
// published quizzes they have not attempted, teachers see their own, admins
// see everything.
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	userID, role := middleware.CurrentUser(c)

	query := h.db.Table("quizzes").
		Select(quizSummarySelect).
		Joins("JOIN users ON users.id = quizzes.created_by_id")

	switch role {
	case models.RoleStudent:
		query = query.Where("quizzes.is_published = ?", true).
			Where("NOT EXISTS (SELECT 1 FROM attempts a WHERE a.quiz_id = quizzes.id AND a.user_id = ?)", userID)
	case models.RoleTeacher:
		query = query.Where("quizzes.created_by_id = ?", userID)
	case models.RoleAdmin:
		// no filter
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Unknown role"})
	}

	var quizzes []QuizSummary
	if err := query.Order("quizzes.created_at DESC").Scan(&quizzes).Error; err != nil {
		log.Printf("Error fetching quizzes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch quizzes"})
	}

	return c.JSON(fiber.Map{"quizzes": quizzes})
}

// questionView omits the correct answer; it is what students get to see
// before submitting.
type questionView struct {
	ID           uuid.UUID      `json:"id"`
	QuestionText string         `json:"question_text"`
	QuestionType string         `json:"question_type"`
	Options      datatypes.JSON `json:"options"`
	Points       int            `json:"points"`
}

func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	userID, role := middleware.CurrentUser(c)

	var quiz models.Quiz
	if err := h.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found"})
	}

	switch role {
	case models.RoleStudent:
		if !quiz.IsPublished {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "This quiz is not available"})
		}
		var attempted int64
		if err := h.db.Model(&models.Attempt{}).
			Where("quiz_id = ? AND user_id = ?", quiz.ID, userID).
			Count(&attempted).Error; err != nil {
			log.Printf("Error checking prior attempt: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch quiz"})
		}
		if attempted > 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "This quiz is not available"})
		}

		questions := make([]questionView, len(quiz.Questions))
		for i, q := range quiz.Questions {
			questions[i] = questionView{
				ID:           q.ID,
				QuestionText: q.QuestionText,
				QuestionType: q.QuestionType,
				Options:      q.Options,
				Points:       q.Points,
			}
		}
		return c.JSON(fiber.Map{"quiz": fiber.Map{
			"id":          quiz.ID,
			"title":       quiz.Title,
			"description": quiz.Description,
			"time_limit":  quiz.TimeLimit,
			"questions":   questions,
		}})
	case models.RoleTeacher:
		if quiz.CreatedByID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You do not have access to this quiz"})
		}
	}

	return c.JSON(fiber.Map{"quiz": quiz})
}

type SubmitQuizRequest struct {
	Answers []services.SubmittedAnswer `json:"answers"`
}

// SubmitQuiz records a student's one graded attempt at a quiz. The published
// check, duplicate pre-check, grading and insert share one transaction; the
// unique index on (user_id, quiz_id) settles concurrent duplicates.
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, role := middleware.CurrentUser(c)
	if role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only students can submit quiz attempts"})
	}

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found or not available"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	var attempt models.Attempt
	var grade services.GradeResult

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, "id = ? AND is_published = ?", quizID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errQuizNotAvailable
			}
			return err
		}

		var prior int64
		if err := tx.Model(&models.Attempt{}).
			Where("quiz_id = ? AND user_id = ?", quizID, userID).
			Count(&prior).Error; err != nil {
			return err
		}
		if prior > 0 {
			return errAlreadyAttempted
		}

		var questions []models.Question
		if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return errQuizEmpty
		}

		grade = services.Grade(questions, req.Answers)

		answersJSON, err := json.Marshal(req.Answers)
		if err != nil {
			return err
		}

		now := time.Now()
		attempt = models.Attempt{
			UserID:      userID,
			QuizID:      quizID,
			Score:       grade.Score,
			Answers:     datatypes.JSON(answersJSON),
			StartedAt:   now,
			CompletedAt: &now,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyAttempted
			}
			return err
		}
		return nil
	})

	switch {
	case errors.Is(txErr, errQuizNotAvailable):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found or not available"})
	case errors.Is(txErr, errAlreadyAttempted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "You have already attempted this quiz"})
	case errors.Is(txErr, errQuizEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Quiz has no questions"})
	case txErr != nil:
		log.Printf("Error submitting quiz: %v", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to submit quiz"})
	}

	return c.JSON(fiber.Map{
		"message": "Quiz submitted successfully",
		"result": fiber.Map{
			"attemptId":      attempt.ID,
			"score":          grade.Score,
			"correctAnswers": grade.CorrectAnswers,
			"totalQuestions": grade.TotalQuestions,
		},
	})
}
