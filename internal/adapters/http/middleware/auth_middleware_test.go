package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo satisfies repositories.UserRepository for middleware tests.
// Only UpdateLastActive is ever reached from here.
type stubUserRepo struct{}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error      { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id uint) error           { return nil }
func (s *stubUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) FirstAdmin(ctx context.Context) (*models.User, error) { return nil, nil }
func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return nil
}
func (s *stubUserRepo) UpdateLastActive(ctx context.Context, id uint, at time.Time) error {
	return nil
}
func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return nil
}

func testApp(t *testing.T, role string) (*fiber.App, string) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
	}

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(cfg, &stubUserRepo{}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  UserID(c),
			"username": c.Locals("username"),
			"role":     Role(c),
		})
	})
	app.Get("/admin-only", AuthMiddleware(cfg, &stubUserRepo{}), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/member-or-admin", AuthMiddleware(cfg, &stubUserRepo{}), MemberOrAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token, err := jwt.GenerateAccessToken(7, "zhang_wei", role, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	require.NoError(t, err)
	return app, token
}

func get(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	app, _ := testApp(t, models.RoleMember)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/protected", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/protected", "Basic abc"))
}

func TestBadTokenIsForbidden(t *testing.T) {
	app, _ := testApp(t, models.RoleMember)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/protected", "Bearer not.a.token"))
}

func TestExpiredTokenIsForbidden(t *testing.T) {
	app, _ := testApp(t, models.RoleMember)

	expired, err := jwt.GenerateAccessToken(7, "zhang_wei", models.RoleMember, "test-secret", -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/protected", "Bearer "+expired))
}

func TestValidTokenPassesThrough(t *testing.T) {
	app, token := testApp(t, models.RoleMember)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/protected", "Bearer "+token))
}

func TestAdminOnlyRejectsMember(t *testing.T) {
	app, memberToken := testApp(t, models.RoleMember)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin-only", "Bearer "+memberToken))

	app, adminToken := testApp(t, models.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin-only", "Bearer "+adminToken))
}

func TestAdminSatisfiesMemberLevelRoutes(t *testing.T) {
	app, adminToken := testApp(t, models.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/member-or-admin", "Bearer "+adminToken))

	app, memberToken := testApp(t, models.RoleMember)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/member-or-admin", "Bearer "+memberToken))
}
