package middleware

import (
	"context"
	"strings"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/pkg/jwt"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and stores the verified claims
// in request locals.
//
// A missing token is 401, an invalid or expired one is 403. The asymmetry
// is inherited contract: callers distinguish "who are you" from "your
// credential is bad" by status code.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Authentication token required")
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			return response.Forbidden(c, "Invalid authentication token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		// Activity stamp, fire-and-forget: a failed write never aborts
		// the request it rode in on.
		go func(userID uint) {
			_ = userRepo.UpdateLastActive(context.Background(), userID, time.Now())
		}(claims.UserID)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Authentication token required")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// MemberOrAdmin middleware allows members and admins. Admin satisfies
// every member-level requirement.
func MemberOrAdmin() fiber.Handler {
	return RoleMiddleware(models.RoleMember, models.RoleAdmin)
}

// UserID returns the authenticated user id from locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// Role returns the authenticated role from locals
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
