package handlers

import (
	"errors"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/pagination"
	"gxas-memberhub/internal/pkg/password"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin-side user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all user accounts with pagination
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	out, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved", fiber.Map{
		"users":      out.Users,
		"pagination": pagination.GetMeta(params, out.Total),
	})
}

// Update applies an admin update to a user account
func (h *UserHandler) Update(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil || targetID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Password != nil && !password.ValidatePassword(*input.Password) {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	actorID := middleware.UserID(c)
	user, err := h.userService.UpdateUser(c.Context(), actorID, uint(targetID), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "You cannot change your own role")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "用户信息已更新", user)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil || targetID < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	actorID := middleware.UserID(c)
	if err := h.userService.DeleteUser(c.Context(), actorID, uint(targetID)); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrCannotDeleteSelf):
			return response.BadRequest(c, "You cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "用户已删除", nil)
}
