package handlers

import (
	"errors"
	"strings"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/password"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents change password request body
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register handles member self-registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		// Conflicts ride the validation bucket: 400, same as the rest of
		// the bad-input family.
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return response.BadRequest(c, "Username already in use")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.BadRequest(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "注册成功", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login handles user login.
//
// Auth failures carry stable codes: AUTHENTICATION_FAILED for bad
// credentials (401), ACCOUNT_INACTIVE with the gated status (403). The
// bad-credential message never says which half of the pair was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		var inactive *domain.AccountInactiveError
		switch {
		case errors.As(err, &inactive):
			return response.Coded(c, fiber.StatusForbidden, "ACCOUNT_INACTIVE", inactive.StatusMessage(), fiber.Map{
				"account_status": inactive.Status,
			})
		case errors.Is(err, domain.ErrAuthenticationFailed):
			return response.Coded(c, fiber.StatusUnauthorized, "AUTHENTICATION_FAILED", "用户名或密码错误", nil)
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Coded(c, fiber.StatusOK, "LOGIN_SUCCESS", "登录成功", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me returns the authenticated user's own account
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved", user.ToResponse())
}

// ChangePassword handles the authenticated password change
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}
	if !password.ValidatePassword(req.NewPassword) {
		return response.BadRequest(c, "New password must be at least 6 characters")
	}

	userID := middleware.UserID(c)
	input := &services.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}

	if err := h.authService.ChangePassword(c.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			return response.Coded(c, fiber.StatusBadRequest, "PASSWORD_MISMATCH", "两次输入的新密码不一致", nil)
		case errors.Is(err, domain.ErrPasswordUnchanged):
			return response.Coded(c, fiber.StatusBadRequest, "PASSWORD_UNCHANGED", "新密码不能与当前密码相同", nil)
		case errors.Is(err, domain.ErrInvalidOldPassword):
			return response.Coded(c, fiber.StatusUnauthorized, "INVALID_OLD_PASSWORD", "旧密码错误", nil)
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Coded(c, fiber.StatusOK, "PASSWORD_CHANGED", "密码修改成功", nil)
}

// CreateAdmin handles admin account creation (admin-gated route)
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" {
		return response.BadRequest(c, "Username and email are required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	result, err := h.authService.CreateAdmin(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return response.BadRequest(c, "Username already in use")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.BadRequest(c, "Email already registered")
		default:
			return response.InternalServerError(c, "Failed to create admin")
		}
	}

	return response.Created(c, "管理员账户创建成功", fiber.Map{
		"user": result.User,
	})
}
