package handlers

import (
	"errors"
	"log"
	"time"

	"quizz_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	type userStats struct {
		TotalUsers   int64 `json:"total_users"`
		StudentCount int64 `json:"student_count"`
		TeacherCount int64 `json:"teacher_count"`
		AdminCount   int64 `json:"admin_count"`
	}
	var users userStats
	err := h.db.Raw(`
		SELECT COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE role = 'Student') AS student_count,
			COUNT(*) FILTER (WHERE role = 'Teacher') AS teacher_count,
			COUNT(*) FILTER (WHERE role = 'Admin') AS admin_count
		FROM users`).Scan(&users).Error
	if err != nil {
		log.Printf("Error fetching admin dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type quizStats struct {
		TotalQuizzes     int64 `json:"total_quizzes"`
		PublishedQuizzes int64 `json:"published_quizzes"`
	}
	var quizzes quizStats
	err = h.db.Raw(`
		SELECT COUNT(*) AS total_quizzes,
			COUNT(*) FILTER (WHERE is_published) AS published_quizzes
		FROM quizzes`).Scan(&quizzes).Error
	if err != nil {
		log.Printf("Error fetching quiz stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type attemptStats struct {
		TotalAttempts int64   `json:"total_attempts"`
		AverageScore  float64 `json:"average_score"`
	}
	var attempts attemptStats
	err = h.db.Raw(`
		SELECT COUNT(*) AS total_attempts,
			COALESCE(AVG(score), 0) AS average_score
		FROM attempts`).Scan(&attempts).Error
	if err != nil {
		log.Printf("Error fetching attempt stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	var recentUsers []models.User
	if err := h.db.Order("created_at DESC").Limit(5).Find(&recentUsers).Error; err != nil {
		log.Printf("Error fetching recent users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	type recentQuizRow struct {
		ID            uuid.UUID `json:"id"`
		Title         string    `json:"title"`
		IsPublished   bool      `json:"is_published"`
		CreatedByName string    `json:"created_by_name"`
		CreatedAt     time.Time `json:"created_at"`
	}
	var recentQuizzes []recentQuizRow
	err = h.db.Raw(`
		SELECT q.id, q.title, q.is_published, u.username AS created_by_name, q.created_at
		FROM quizzes q
		JOIN users u ON q.created_by_id = u.id
		ORDER BY q.created_at DESC
		LIMIT 5`).Scan(&recentQuizzes).Error
	if err != nil {
		log.Printf("Error fetching recent quizzes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch dashboard data"})
	}

	return c.JSON(fiber.Map{
		"userStats":     users,
		"quizStats":     quizzes,
		"attemptStats":  attempts,
		"recentUsers":   recentUsers,
		"recentQuizzes": recentQuizzes,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{"users": users})
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
	}
	if !models.ValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "User with this email already exists"})
		}
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if req.Username != nil && *req.Username != "" {
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		var taken int64
		if err := h.db.Model(&models.User{}).
			Where("email = ? AND id != ?", *req.Email, user.ID).
			Count(&taken).Error; err != nil {
			log.Printf("Error checking email availability: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user"})
		}
		if taken > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already in use by another user"})
		}
		user.Email = *req.Email
	}
	if req.Role != nil && *req.Role != "" {
		if !models.ValidRole(*req.Role) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role"})
		}
		user.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
		}
		user.Password = string(hashedPassword)
	}

	if err := h.db.Save(&user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"message": "User updated successfully"})
}

// DeleteUser removes a user and everything hanging off them: their own
// attempts, and for teachers the full cascade of every owned quiz.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}

		if user.Role == models.RoleTeacher {
			var quizIDs []uuid.UUID
			if err := tx.Model(&models.Quiz{}).
				Where("created_by_id = ?", user.ID).
				Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
			if len(quizIDs) > 0 {
				if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Attempt{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", quizIDs).Delete(&models.Quiz{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(&user).Error
	})
	if txErr != nil {
		log.Printf("Error deleting user: %v", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// DeleteQuiz is the admin path: same cascade as the teacher's, no ownership
// check.
func (h *AdminHandler) DeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Quiz not found"})
	}

	if err := deleteQuizCascade(h.db, quiz.ID); err != nil {
		log.Printf("Error deleting quiz: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete quiz"})
	}

	return c.JSON(fiber.Map{"message": "Quiz deleted successfully"})
}
