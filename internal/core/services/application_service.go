package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// ApplicationService governs the membership-application lifecycle:
// 待审核 → 审核通过 | 审核不通过, with both outcomes terminal.
type ApplicationService struct {
	appRepo  repositories.ApplicationRepository
	notifier *NotificationService
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo repositories.ApplicationRepository, notifier *NotificationService) *ApplicationService {
	return &ApplicationService{
		appRepo:  appRepo,
		notifier: notifier,
	}
}

// SubmitInput represents a public membership application
type SubmitInput struct {
	ApplicantName     string `json:"applicant_name"`
	ApplicantEmail    string `json:"applicant_email"`
	ApplicantPhone    string `json:"applicant_phone"`
	WorkUnit          string `json:"work_unit"`
	ApplicationReason string `json:"application_reason"`
}

// ReviewInput represents an admin review decision
type ReviewInput struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes"`
}

// Submit records a new application in the pending state and sends a
// confirmation mail (best-effort).
func (s *ApplicationService) Submit(ctx context.Context, input *SubmitInput) (*models.Application, error) {
	app := &models.Application{
		ApplicantName:     input.ApplicantName,
		ApplicantEmail:    input.ApplicantEmail,
		ApplicantPhone:    input.ApplicantPhone,
		WorkUnit:          input.WorkUnit,
		ApplicationReason: input.ApplicationReason,
		Status:            models.ApplicationPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	log.Printf("✅ Application submitted: #%d (%s)", app.ApplicationID, app.ApplicantName)

	s.notifier.NotifyApplicationReceived(app.ApplicantEmail, app.ApplicantName)

	return app, nil
}

// Review applies the one and only mutation an application ever receives.
//
// The store-level compare-and-set keeps the transition exactly-once: a
// second review — replayed request or concurrent admin — fails with
// ErrAlreadyProcessed instead of overwriting the verdict. The result mail
// is fire-and-forget; the state change stands whether or not it delivers.
func (s *ApplicationService) Review(ctx context.Context, applicationID uint, reviewerID uint, input *ReviewInput) (*models.Application, error) {
	if input.Status != models.ApplicationApproved && input.Status != models.ApplicationRejected {
		return nil, domain.ErrInvalidDecision
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	if app.IsProcessed() {
		return nil, domain.ErrAlreadyProcessed
	}

	rows, err := s.appRepo.MarkReviewed(ctx, applicationID, input.Status, reviewerID, input.ReviewNotes, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race against another reviewer.
		return nil, domain.ErrAlreadyProcessed
	}

	log.Printf("✅ Application #%d reviewed: %s (by user %d)", applicationID, input.Status, reviewerID)

	s.notifier.NotifyApplicationResult(
		app.ApplicantEmail,
		app.ApplicantName,
		input.Status == models.ApplicationApproved,
		input.ReviewNotes,
	)

	return s.appRepo.GetByID(ctx, applicationID)
}

// GetByID gets an application by ID
func (s *ApplicationService) GetByID(ctx context.Context, applicationID uint) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// List lists applications, optionally filtered by status
func (s *ApplicationService) List(ctx context.Context, status string, offset, limit int) ([]*models.Application, int64, error) {
	return s.appRepo.List(ctx, status, offset, limit)
}

// CountPending counts applications awaiting review
func (s *ApplicationService) CountPending(ctx context.Context) (int64, error) {
	return s.appRepo.CountPending(ctx)
}

// Delete removes an application record (mistaken submissions)
func (s *ApplicationService) Delete(ctx context.Context, applicationID uint) error {
	if _, err := s.appRepo.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrApplicationNotFound
		}
		return err
	}
	return s.appRepo.Delete(ctx, applicationID)
}
