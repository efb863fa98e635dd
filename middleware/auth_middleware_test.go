package middleware

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizz_backend/models"
)

// withClaims stands in for Protected(): it plants a parsed token in Locals
// the way jwtware does after verification.
func withClaims(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"role":    role,
		})
		c.Locals("user", token)
		return c.Next()
	}
}

func testApp(role string, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", withClaims(uuid.New(), role), guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App) (int, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, "/guarded", nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestRoleGuards(t *testing.T) {
	cases := []struct {
		name  string
		role  string
		guard fiber.Handler
		want  int
	}{
		{"teacher passes teacher guard", models.RoleTeacher, TeacherRequired(), http.StatusOK},
		{"student blocked by teacher guard", models.RoleStudent, TeacherRequired(), http.StatusForbidden},
		{"admin blocked by teacher guard", models.RoleAdmin, TeacherRequired(), http.StatusForbidden},
		{"admin passes admin guard", models.RoleAdmin, AdminRequired(), http.StatusOK},
		{"teacher blocked by admin guard", models.RoleTeacher, AdminRequired(), http.StatusForbidden},
		{"student passes student guard", models.RoleStudent, StudentRequired(), http.StatusOK},
		{"admin blocked by student guard", models.RoleAdmin, StudentRequired(), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, testApp(tc.role, tc.guard))
			assert.Equal(t, tc.want, status)
			if tc.want == http.StatusForbidden {
				assert.Contains(t, body, "Forbidden")
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	wantID := uuid.New()

	app := fiber.New()
	app.Get("/guarded", withClaims(wantID, models.RoleStudent), func(c *fiber.Ctx) error {
		id, role := CurrentUser(c)
		assert.Equal(t, wantID, id)
		assert.Equal(t, models.RoleStudent, role)
		return c.SendString("ok")
	})

	status, _ := get(t, app)
	assert.Equal(t, http.StatusOK, status)
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	t.Setenv("JWT_SECRET", "test-secret")
	app.Get("/guarded", Protected(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	status, body := get(t, app)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "No token provided")
}
