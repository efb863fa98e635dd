package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"quizz_backend/middleware"
	"quizz_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeacherHandler struct {
	db *gorm.DB
}

func NewTeacherHandler(db *gorm.DB) *TeacherHandler {
	return &TeacherHandler{db: db}
}

type QuestionInput struct {
	QuestionText  string   `json:"questionText" validate:"required"`
	QuestionType  string   `json:"questionType"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Points        int      `json:"points"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	TimeLimit   *int            `json:"timeLimit"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuizRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	IsPublished *bool            `json:"isPublished"`
	TimeLimit   *int             `json:"timeLimit"`
	Questions   *[]QuestionInput `json:"questions"`
}

// buildQuestions validates and converts a question list before anything is
// written; a single bad question rejects the whole set.
func buildQuestions(quizID uuid.UUID, inputs []QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		if err := validate.Struct(in); err != nil {
			return nil, errors.New("each question must have text and a correct answer")
		}

		questionType := in.QuestionType
		if questionType == "" {
			questionType = models.QuestionTypeMultipleChoice
		}
		options := in.Options
		if options == nil {
			options = []string{}
		}
		optionsJSON, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		points := in.Points
		if points <= 0 {
			points = 1
		}

		questions = append(questions, models.Question{
			QuizID:        quizID,
			Position:      i,
			QuestionText:  in.QuestionText,
			QuestionType:  questionType,
			Options:       datatypes.JSON(optionsJSON),
			CorrectAnswer: in.CorrectAnswer,
			Points:        points,
		})
	}
	return questions, nil
}

func (h *TeacherHandler) Dashboard(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	type quizRow struct {
		ID           uuid.UUID `json:"id"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		IsPublished  bool      `json:"is_published"`
		CreatedAt    time.Time `json:"created_at"`
		AttemptCount int64     `json:"attempt_count"`
		AverageScore float64   `json:"average_score"`
	}
	var quizzes []quizRow
	err := h.db.Raw(`
		SELECT q.id, q.title, q.description, q.is_published, q.created_at,
			(SELECT COUNT(*) FROM attempts WHERE quiz_id = q.id) AS attempt_count,
			(SELECT COALESCE(AVG(score), 0) FROM attempts WHERE quiz_id = q.id) AS average_score
		FROM quizzes q
		WHERE q.created_by_id = ?
		ORDER BY q.created_at DESC`, userID).Scan(&quizzes).Error
	if err != nil {
		log.Printf("Error fetching teacher dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type attemptRow struct {
		AttemptID   uuid.UUID  `json:"attempt_id"`
		QuizID      uuid.UUID  `json:"quiz_id"`
		Title       string     `json:"title"`
		StudentName string     `json:"student_name"`
		Score       float64    `json:"score"`
		CompletedAt *time.Time `json:"completed_at"`
	}
	var recentAttempts []attemptRow
	err = h.db.Raw(`
		SELECT a.id AS attempt_id, q.id AS quiz_id, q.title, u.username AS student_name, a.score, a.completed_at
		FROM attempts a
		JOIN quizzes q ON a.quiz_id = q.id
		JOIN users u ON a.user_id = u.id
		WHERE q.created_by_id = ?
		ORDER BY a.completed_at DESC
		LIMIT 10`, userID).Scan(&recentAttempts).Error
	if err != nil {
		log.Printf("Error fetching recent attempts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type statsRow struct {
		TotalQuizzes     int64 `json:"total_quizzes"`
		PublishedQuizzes int64 `json:"published_quizzes"`
		TotalStudents    int64 `json:"total_students"`
	}
	var stats statsRow
	err = h.db.Raw(`
		SELECT COUNT(*) AS total_quizzes,
			COUNT(*) FILTER (WHERE is_published) AS published_quizzes,
			(SELECT COUNT(DISTINCT a.user_id)
				FROM attempts a JOIN quizzes q ON a.quiz_id = q.id
				WHERE q.created_by_id = ?) AS total_students
		FROM quizzes
		WHERE created_by_id = ?`, userID, userID).Scan(&stats).Error
	if err != nil {
		log.Printf("Error fetching teacher stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	return c.JSON(fiber.Map{
		"quizzes":        quizzes,
		"recentAttempts": recentAttempts,
		"stats":          stats,
	})
}

func (h *TeacherHandler) CreateQuiz(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)

	var req CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Quiz title and at least one question are required"})
	}

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		CreatedByID: userID,
		IsPublished: false,
		TimeLimit:   req.TimeLimit,
	}

	questions, err := buildQuestions(uuid.Nil, req.Questions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		return tx.Create(&questions).Error
	})
	if txErr != nil {
		log.Printf("Error creating quiz: %v", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"quiz": fiber.Map{
			"id":          quiz.ID,
			"title":       quiz.Title,
			"description": quiz.Description,
		},
	})
}

// UpdateQuiz partially updates a quiz the caller owns. A supplied question
// list replaces the previous set wholesale. Non-owned quizzes answer 404,
// the same as missing ones.
func (h *TeacherHandler) UpdateQuiz(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)
	quizID := c.Params("id")

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ? AND created_by_id = ?", quizID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found or not authorized to edit"})
	}

	var req UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	var questions []models.Question
	if req.Questions != nil {
		var err error
		questions, err = buildQuestions(quiz.ID, *req.Questions)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Title != nil {
			quiz.Title = *req.Title
		}
		if req.Description != nil {
			quiz.Description = *req.Description
		}
		if req.IsPublished != nil {
			quiz.IsPublished = *req.IsPublished
		}
		if req.TimeLimit != nil {
			quiz.TimeLimit = req.TimeLimit
		}
		if err := tx.Save(&quiz).Error; err != nil {
			return err
		}

		if req.Questions != nil {
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			if len(questions) > 0 {
				if err := tx.Create(&questions).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		log.Printf("Error updating quiz: %v", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update quiz"})
	}

	return c.JSON(fiber.Map{"message": "Quiz updated successfully"})
}

func (h *TeacherHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)
	quizID := c.Params("id")

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ? AND created_by_id = ?", quizID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found or not authorized to delete"})
	}

	if err := deleteQuizCascade(h.db, quiz.ID); err != nil {
		log.Printf("Error deleting quiz: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete quiz"})
	}

	return c.JSON(fiber.Map{"message": "Quiz deleted successfully"})
}

// deleteQuizCascade removes a quiz with its attempts and questions in one
// transaction, so no partial cascade is ever observable.
func deleteQuizCascade(db *gorm.DB, quizID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, "id = ?", quizID).Error
	})
}

func (h *TeacherHandler) QuizResults(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUser(c)
	quizID := c.Params("id")

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ? AND created_by_id = ?", quizID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found or not authorized to view results"})
	}

	type attemptRow struct {
		AttemptID    uuid.UUID      `json:"attempt_id"`
		StudentID    uuid.UUID      `json:"student_id"`
		StudentName  string         `json:"student_name"`
		StudentEmail string         `json:"student_email"`
		Score        float64        `json:"score"`
		CompletedAt  *time.Time     `json:"completed_at"`
		Answers      datatypes.JSON `json:"answers"`
	}
	var attempts []attemptRow
	err := h.db.Raw(`
		SELECT a.id AS attempt_id, u.id AS student_id, u.username AS student_name,
			u.email AS student_email, a.score, a.completed_at, a.answers
		FROM attempts a
		JOIN users u ON a.user_id = u.id
		WHERE a.quiz_id = ?
		ORDER BY a.completed_at DESC`, quiz.ID).Scan(&attempts).Error
	if err != nil {
		log.Printf("Error fetching quiz results: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch quiz results"})
	}

	var questions []models.Question
	if err := h.db.Select("id", "question_text", "correct_answer").
		Where("quiz_id = ?", quiz.ID).Order("position ASC").Find(&questions).Error; err != nil {
		log.Printf("Error fetching quiz questions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch quiz results"})
	}

	var averageScore float64
	for _, a := range attempts {
		averageScore += a.Score
	}
	if len(attempts) > 0 {
		averageScore /= float64(len(attempts))
	}

	return c.JSON(fiber.Map{
		"quizTitle": quiz.Title,
		"statistics": fiber.Map{
			"totalAttempts": len(attempts),
			"averageScore":  averageScore,
		},
		"attempts":  attempts,
		"questions": questions,
	})
}
