package handlers

import (
	"errors"
	"time"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/pagination"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FeeHandler handles membership fee endpoints
type FeeHandler struct {
	membershipService *services.MembershipService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(membershipService *services.MembershipService) *FeeHandler {
	return &FeeHandler{membershipService: membershipService}
}

// FeeRequest represents a fee record body. Dates come in as YYYY-MM-DD.
type FeeRequest struct {
	MemberID      uint    `json:"member_id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	ValidFrom     string  `json:"valid_from"`
	ValidUntil    string  `json:"valid_until"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
}

func (r *FeeRequest) toInput() (*services.FeeInput, error) {
	input := &services.FeeInput{
		MemberID:      r.MemberID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		PaymentStatus: r.PaymentStatus,
	}

	parse := func(s string, dst *time.Time) error {
		if s == "" {
			return nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
		*dst = t
		return nil
	}

	if err := parse(r.PaymentDate, &input.PaymentDate); err != nil {
		return nil, err
	}
	if err := parse(r.ValidFrom, &input.ValidFrom); err != nil {
		return nil, err
	}
	if err := parse(r.ValidUntil, &input.ValidUntil); err != nil {
		return nil, err
	}
	return input, nil
}

// MyStatus returns the caller's derived payment standing as of today
func (h *FeeHandler) MyStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	member, err := h.membershipService.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "会员档案不存在")
		}
		return response.InternalServerError(c, "Failed to get fee status")
	}

	status, err := h.membershipService.CurrentFeeStatus(c.Context(), member.MemberID, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to get fee status")
	}

	return response.Success(c, "Fee status retrieved", status)
}

// MyRecords lists the caller's own fee records
func (h *FeeHandler) MyRecords(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	params := pagination.GetParams(c)

	member, err := h.membershipService.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "会员档案不存在")
		}
		return response.InternalServerError(c, "Failed to list fee records")
	}

	fees, total, err := h.membershipService.ListMemberFees(c.Context(), member.MemberID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list fee records")
	}

	return response.Success(c, "Fee records retrieved", fiber.Map{
		"fees":       fees,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Add records a new fee payment (admin)
func (h *FeeHandler) Add(c *fiber.Ctx) error {
	var req FeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Dates must be in YYYY-MM-DD format")
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = models.FeePaid
	}

	fee, err := h.membershipService.RecordPayment(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to record fee")
	}

	return response.Created(c, "缴费记录已添加", fee)
}

// ListAll lists all fee records with optional filters (admin)
func (h *FeeHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	memberID := uint(c.QueryInt("member_id", 0))
	paymentStatus := c.Query("payment_status")

	fees, total, err := h.membershipService.ListFees(c.Context(), memberID, paymentStatus, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list fees")
	}

	return response.Success(c, "Fees retrieved", fiber.Map{
		"fees":       fees,
		"pagination": pagination.GetMeta(params, total),
	})
}

// MemberRecords lists a member's fee records plus their derived standing
// (admin)
func (h *FeeHandler) MemberRecords(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}
	params := pagination.GetParams(c)

	fees, total, err := h.membershipService.ListMemberFees(c.Context(), uint(id), params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to list fee records")
	}

	status, err := h.membershipService.CurrentFeeStatus(c.Context(), uint(id), time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to derive fee status")
	}

	return response.Success(c, "Fee records retrieved", fiber.Map{
		"fees":       fees,
		"fee_status": status,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Update modifies an existing fee record (admin)
func (h *FeeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid fee ID")
	}

	var req FeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Dates must be in YYYY-MM-DD format")
	}

	fee, err := h.membershipService.UpdateFee(c.Context(), uint(id), input)
	if err != nil {
		if errors.Is(err, domain.ErrFeeNotFound) {
			return response.NotFound(c, "Fee record not found")
		}
		return response.InternalServerError(c, "Failed to update fee")
	}

	return response.Success(c, "缴费记录已更新", fee)
}
