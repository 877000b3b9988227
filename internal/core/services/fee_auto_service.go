package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// FeeAutoService runs the scheduled fee sweep: members in good standing
// whose paid coverage has lapsed get flagged 欠费 and a renewal reminder.
// The sweep also re-derives status from fee records, so a cascade missed
// during RecordPayment heals on the next run.
type FeeAutoService struct {
	memberRepo repositories.MemberRepository
	feeRepo    repositories.FeeRepository
	notifier   *NotificationService
	cron       *cron.Cron
}

// NewFeeAutoService creates a new fee auto service
func NewFeeAutoService(
	memberRepo repositories.MemberRepository,
	feeRepo repositories.FeeRepository,
	notifier *NotificationService,
) *FeeAutoService {
	return &FeeAutoService{
		memberRepo: memberRepo,
		feeRepo:    feeRepo,
		notifier:   notifier,
		cron:       cron.New(),
	}
}

// Start schedules the daily sweep (08:30)
func (s *FeeAutoService) Start() {
	s.cron.AddFunc("30 8 * * *", func() {
		if err := s.RunSweep(context.Background(), time.Now()); err != nil {
			log.Printf("⚠️ Fee sweep failed: %v", err)
		}
	})
	s.cron.Start()
	log.Println("🚀 FeeAutoService started (daily 08:30)")
}

// Stop stops the scheduler
func (s *FeeAutoService) Stop() {
	s.cron.Stop()
	log.Println("🛑 FeeAutoService stopped")
}

// RunSweep flags every 正常 member without an effective paid fee at asOf
// as 欠费 and sends a reminder. Reminder failures do not stop the sweep.
func (s *FeeAutoService) RunSweep(ctx context.Context, asOf time.Time) error {
	members, err := s.memberRepo.ListByStatus(ctx, models.MembershipNormal)
	if err != nil {
		return err
	}

	flagged := 0
	for _, member := range members {
		_, err := s.feeRepo.GetEffective(ctx, member.MemberID, asOf)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// Transient store error: skip rather than misflag.
			log.Printf("⚠️ Fee lookup failed for member %d: %v", member.MemberID, err)
			continue
		}

		if err := s.memberRepo.UpdateStatus(ctx, member.MemberID, models.MembershipOwing); err != nil {
			log.Printf("⚠️ Failed to flag member %d as owing: %v", member.MemberID, err)
			continue
		}
		flagged++

		if member.User != nil {
			s.notifier.NotifyFeeReminder(member.User.Email, member.FullName)
		}
	}

	log.Printf("✅ Fee sweep done: %d member(s) flagged as owing", flagged)
	return nil
}
