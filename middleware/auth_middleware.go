package middleware

import (
	config "quizz_backend/configs"
	"quizz_backend/models"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "No token provided"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"message": "Invalid or expired token"})
}

// CurrentUser extracts the identity carried by a verified token. Must run
// behind Protected().
func CurrentUser(c *fiber.Ctx) (uuid.UUID, string) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	userID, _ := uuid.Parse(claims["user_id"].(string))
	role, _ := claims["role"].(string)
	return userID, role
}

func AdminRequired() fiber.Handler {
	return roleRequired(models.RoleAdmin, "Admin access required")
}

func TeacherRequired() fiber.Handler {
	return roleRequired(models.RoleTeacher, "Teacher access required")
}

func StudentRequired() fiber.Handler {
	return roleRequired(models.RoleStudent, "Student access required")
}

func roleRequired(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, current := CurrentUser(c); current != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden: " + message,
			})
		}
		return c.Next()
	}
}
