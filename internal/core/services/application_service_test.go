package services

import (
	"context"
	"testing"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// silentNotifier returns a notifier with no SMTP host, so every send is a
// no-op.
func silentNotifier() *NotificationService {
	return NewNotificationService(&config.Config{AppMode: "dev"})
}

func pendingApplication() *models.Application {
	return &models.Application{
		ApplicationID:  7,
		ApplicantName:  "王芳",
		ApplicantEmail: "wang_fang@example.com",
		ApplicantPhone: "13800138000",
		Status:         models.ApplicationPending,
	}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	appRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Application")).
		Run(func(args mock.Arguments) {
			app := args.Get(1).(*models.Application)
			app.ApplicationID = 7
			assert.Equal(t, models.ApplicationPending, app.Status)
		}).
		Return(nil)

	app, err := svc.Submit(context.Background(), &SubmitInput{
		ApplicantName:  "王芳",
		ApplicantEmail: "wang_fang@example.com",
		ApplicantPhone: "13800138000",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
}

func TestReviewRejectsInvalidDecision(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	_, err := svc.Review(context.Background(), 7, 1, &ReviewInput{Status: "maybe"})

	assert.ErrorIs(t, err, domain.ErrInvalidDecision)
	appRepo.AssertNotCalled(t, "MarkReviewed",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewNotFound(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	appRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Review(context.Background(), 7, 1, &ReviewInput{Status: models.ApplicationApproved})
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestReviewOfProcessedApplicationFails(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	app := pendingApplication()
	app.Status = models.ApplicationApproved
	appRepo.On("GetByID", mock.Anything, uint(7)).Return(app, nil)

	// A second verdict never overwrites the first, in either direction.
	_, err := svc.Review(context.Background(), 7, 1, &ReviewInput{Status: models.ApplicationRejected})

	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	appRepo.AssertNotCalled(t, "MarkReviewed",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewLosesRaceToConcurrentReviewer(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	// The read sees pending, but by the time the update runs another
	// reviewer has already decided: zero rows change.
	appRepo.On("GetByID", mock.Anything, uint(7)).Return(pendingApplication(), nil)
	appRepo.On("MarkReviewed", mock.Anything, uint(7), models.ApplicationApproved, uint(1), "ok", mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)

	_, err := svc.Review(context.Background(), 7, 1, &ReviewInput{
		Status: models.ApplicationApproved, ReviewNotes: "ok",
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestReviewApprovesPendingApplication(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	now := time.Now()
	reviewed := pendingApplication()
	reviewed.Status = models.ApplicationApproved
	reviewed.ProcessedDate = &now

	appRepo.On("GetByID", mock.Anything, uint(7)).Return(pendingApplication(), nil).Once()
	appRepo.On("MarkReviewed", mock.Anything, uint(7), models.ApplicationApproved, uint(3), "符合入会条件", mock.AnythingOfType("time.Time")).
		Return(int64(1), nil)
	appRepo.On("GetByID", mock.Anything, uint(7)).Return(reviewed, nil).Once()

	app, err := svc.Review(context.Background(), 7, 3, &ReviewInput{
		Status: models.ApplicationApproved, ReviewNotes: "符合入会条件",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
	appRepo.AssertExpectations(t)
}

func TestDeleteMissingApplication(t *testing.T) {
	appRepo := new(mockApplicationRepo)
	svc := NewApplicationService(appRepo, silentNotifier())

	appRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}
