package handlers

import (
	"errors"
	"time"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/pagination"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member profile endpoints
type MemberHandler struct {
	membershipService *services.MembershipService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(membershipService *services.MembershipService) *MemberHandler {
	return &MemberHandler{membershipService: membershipService}
}

// ProfileRequest represents the self-service profile body. BirthDate comes
// in as a date string to keep the JSON shape simple for the frontend.
type ProfileRequest struct {
	FullName  string `json:"full_name"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r *ProfileRequest) toInput() (*services.ProfileInput, error) {
	input := &services.ProfileInput{
		FullName: r.FullName,
		Gender:   r.Gender,
		Phone:    r.Phone,
		Address:  r.Address,
	}
	if r.BirthDate != "" {
		t, err := time.Parse("2006-01-02", r.BirthDate)
		if err != nil {
			return nil, err
		}
		input.BirthDate = &t
	}
	return input, nil
}

// CreateProfile creates the caller's member profile
func (h *MemberHandler) CreateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Birth date must be in YYYY-MM-DD format")
	}

	userID := middleware.UserID(c)
	member, err := h.membershipService.CreateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			return response.BadRequest(c, "会员档案已存在")
		}
		return response.InternalServerError(c, "Failed to create profile")
	}

	return response.Created(c, "会员档案创建成功", member)
}

// MyProfile returns the caller's own member profile
func (h *MemberHandler) MyProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	member, err := h.membershipService.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "会员档案不存在")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved", member)
}

// UpdateMyProfile updates the caller's self-service profile fields
func (h *MemberHandler) UpdateMyProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Birth date must be in YYYY-MM-DD format")
	}

	userID := middleware.UserID(c)
	member, err := h.membershipService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "会员档案不存在")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "会员档案已更新", member)
}

// List lists members, optionally filtered by membership status
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	members, total, err := h.membershipService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved", fiber.Map{
		"members":    members,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Get returns a member by ID
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.membershipService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved", member)
}

// AdminUpdate applies an admin update, including level and status
func (h *MemberHandler) AdminUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.AdminMemberUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.membershipService.AdminUpdate(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMembershipLevel):
			return response.BadRequest(c, "Membership level must be 理事, 秘书长, 副理事长 or 理事长")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "会员信息已更新", member)
}

// Delete removes a member profile
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.membershipService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to delete member")
	}

	return response.Success(c, "会员档案已删除", nil)
}
