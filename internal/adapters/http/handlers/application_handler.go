package handlers

import (
	"errors"
	"strings"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/pagination"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles membership application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Submit handles a public membership application. No authentication:
// applicants do not have accounts yet.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.ApplicantName = strings.TrimSpace(input.ApplicantName)
	input.ApplicantEmail = strings.TrimSpace(input.ApplicantEmail)

	if input.ApplicantName == "" {
		return response.BadRequest(c, "Applicant name is required")
	}
	if input.ApplicantEmail == "" {
		return response.BadRequest(c, "Applicant email is required")
	}
	if input.ApplicantPhone == "" {
		return response.BadRequest(c, "Applicant phone is required")
	}

	app, err := h.appService.Submit(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to submit application")
	}

	return response.Created(c, "入会申请已提交，请等待审核", app)
}

// List lists applications, optionally filtered by status
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	apps, total, err := h.appService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", fiber.Map{
		"applications": apps,
		"pagination":   pagination.GetMeta(params, total),
	})
}

// Get returns a single application
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}

	return response.Success(c, "Application retrieved", app)
}

// Review records the admin verdict on a pending application
func (h *ApplicationHandler) Review(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reviewerID := middleware.UserID(c)
	app, err := h.appService.Review(c.Context(), uint(id), reviewerID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDecision):
			return response.BadRequest(c, "Review status must be 审核通过 or 审核不通过")
		case errors.Is(err, domain.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return response.BadRequest(c, "该申请已被处理")
		default:
			return response.InternalServerError(c, "Failed to review application")
		}
	}

	return response.Success(c, "审核完成", app)
}

// PendingCount returns the number of applications awaiting review
func (h *ApplicationHandler) PendingCount(c *fiber.Ctx) error {
	count, err := h.appService.CountPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to count applications")
	}

	return response.Success(c, "Pending count retrieved", fiber.Map{
		"pending_count": count,
	})
}

// Delete removes an application record
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	if err := h.appService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to delete application")
	}

	return response.Success(c, "申请记录已删除", nil)
}
