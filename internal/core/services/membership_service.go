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

// Fee status labels returned by the validity derivation
const (
	FeeStatusPaid   = "已缴费"
	FeeStatusUnpaid = "未缴费"
)

// MembershipService handles member profiles, fee records and the derived
// membership standing.
type MembershipService struct {
	memberRepo repositories.MemberRepository
	feeRepo    repositories.FeeRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(memberRepo repositories.MemberRepository, feeRepo repositories.FeeRepository) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
		feeRepo:    feeRepo,
	}
}

// ProfileInput represents the self-service profile fields. Membership level
// and status are admin-only and deliberately absent here.
type ProfileInput struct {
	FullName  string     `json:"full_name"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
}

// AdminMemberUpdateInput represents an admin update, which may additionally
// touch level and status. Nil fields stay untouched.
type AdminMemberUpdateInput struct {
	FullName         *string `json:"full_name"`
	Gender           *string `json:"gender"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	MembershipLevel  *string `json:"membership_level"`
	MembershipStatus *string `json:"membership_status"`
}

// FeeInput represents a fee record created by an admin
type FeeInput struct {
	MemberID      uint      `json:"member_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
}

// FeeStatus is the derived payment standing of a member at a point in time
type FeeStatus struct {
	PaymentStatus  string     `json:"payment_status"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	NextPaymentDue *time.Time `json:"next_payment_due,omitempty"`
}

// Paid reports whether the member holds an effective fee
func (f *FeeStatus) Paid() bool {
	return f.PaymentStatus == FeeStatusPaid
}

// ============================================================
// Profiles
// ============================================================

// CreateProfile creates the one member profile a user may hold
func (s *MembershipService) CreateProfile(ctx context.Context, userID uint, input *ProfileInput) (*models.Member, error) {
	_, err := s.memberRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, domain.ErrProfileAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &models.Member{
		UserID:           userID,
		FullName:         input.FullName,
		Gender:           input.Gender,
		BirthDate:        input.BirthDate,
		Phone:            input.Phone,
		Address:          input.Address,
		MembershipStatus: models.MembershipNormal,
	}

	// The unique index on user_id backstops a concurrent double-create:
	// the second writer fails at the store and surfaces as a conflict.
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	log.Printf("✅ Member profile created: #%d (user %d)", member.MemberID, userID)
	return member, nil
}

// GetProfileByUserID gets the profile owned by a user
func (s *MembershipService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// UpdateProfile updates the self-service fields of the caller's profile.
// Level and status never pass through here.
func (s *MembershipService) UpdateProfile(ctx context.Context, userID uint, input *ProfileInput) (*models.Member, error) {
	member, err := s.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		member.FullName = input.FullName
	}
	if input.Gender != "" {
		member.Gender = input.Gender
	}
	if input.BirthDate != nil {
		member.BirthDate = input.BirthDate
	}
	if input.Phone != "" {
		member.Phone = input.Phone
	}
	if input.Address != "" {
		member.Address = input.Address
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID gets a member by member ID
func (s *MembershipService) GetByID(ctx context.Context, memberID uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List lists members, optionally filtered by membership status
func (s *MembershipService) List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, status, offset, limit)
}

// AdminUpdate applies an admin update to a member record
func (s *MembershipService) AdminUpdate(ctx context.Context, memberID uint, input *AdminMemberUpdateInput) (*models.Member, error) {
	if input.MembershipLevel != nil && !models.ValidMembershipLevel(*input.MembershipLevel) {
		return nil, domain.ErrInvalidMembershipLevel
	}

	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		member.FullName = *input.FullName
	}
	if input.Gender != nil {
		member.Gender = *input.Gender
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.MembershipLevel != nil {
		member.MembershipLevel = *input.MembershipLevel
	}
	if input.MembershipStatus != nil {
		member.MembershipStatus = *input.MembershipStatus
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member profile
func (s *MembershipService) Delete(ctx context.Context, memberID uint) error {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, memberID)
}

// ============================================================
// Fees & derived standing
// ============================================================

// CurrentFeeStatus derives a member's payment standing at asOf. It is a
// pure read: among the paid records whose interval covers asOf, the one
// with the latest valid_until decides. No covering record means unpaid.
func (s *MembershipService) CurrentFeeStatus(ctx context.Context, memberID uint, asOf time.Time) (*FeeStatus, error) {
	fee, err := s.feeRepo.GetEffective(ctx, memberID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &FeeStatus{PaymentStatus: FeeStatusUnpaid}, nil
		}
		return nil, err
	}

	return &FeeStatus{
		PaymentStatus:  FeeStatusPaid,
		ValidFrom:      &fee.ValidFrom,
		ValidUntil:     &fee.ValidUntil,
		NextPaymentDue: &fee.ValidUntil,
	}, nil
}

// RecordPayment creates a fee record and, for a paid record, cascades the
// member back to 正常.
//
// The cascade is a second write on purpose — status reads stay cheap, no
// interval scan per request. It is idempotent and re-derivable, so a
// failure here is logged and swallowed rather than failing a payment that
// already landed; the fee watchdog heals missed cascades.
func (s *MembershipService) RecordPayment(ctx context.Context, input *FeeInput) (*models.MembershipFee, error) {
	member, err := s.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	fee := &models.MembershipFee{
		MemberID:      input.MemberID,
		Amount:        input.Amount,
		PaymentDate:   input.PaymentDate,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: input.PaymentStatus,
	}

	if err := s.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}

	if fee.PaymentStatus == models.FeePaid {
		if err := s.memberRepo.UpdateStatus(ctx, member.MemberID, models.MembershipNormal); err != nil {
			log.Printf("⚠️ Fee #%d recorded but status cascade failed for member %d: %v", fee.FeeID, member.MemberID, err)
		}
	}

	log.Printf("✅ Fee recorded: #%d member=%d status=%s", fee.FeeID, fee.MemberID, fee.PaymentStatus)
	return fee, nil
}

// UpdateFee updates an existing fee record and re-runs the cascade when the
// record became paid.
func (s *MembershipService) UpdateFee(ctx context.Context, feeID uint, input *FeeInput) (*models.MembershipFee, error) {
	fee, err := s.feeRepo.GetByID(ctx, feeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeeNotFound
		}
		return nil, err
	}

	wasPaid := fee.PaymentStatus == models.FeePaid

	if input.Amount != 0 {
		fee.Amount = input.Amount
	}
	if !input.PaymentDate.IsZero() {
		fee.PaymentDate = input.PaymentDate
	}
	if !input.ValidFrom.IsZero() {
		fee.ValidFrom = input.ValidFrom
	}
	if !input.ValidUntil.IsZero() {
		fee.ValidUntil = input.ValidUntil
	}
	if input.PaymentMethod != "" {
		fee.PaymentMethod = input.PaymentMethod
	}
	if input.PaymentStatus != "" {
		fee.PaymentStatus = input.PaymentStatus
	}

	if err := s.feeRepo.Update(ctx, fee); err != nil {
		return nil, err
	}

	if !wasPaid && fee.PaymentStatus == models.FeePaid {
		if err := s.memberRepo.UpdateStatus(ctx, fee.MemberID, models.MembershipNormal); err != nil {
			log.Printf("⚠️ Fee #%d updated but status cascade failed for member %d: %v", fee.FeeID, fee.MemberID, err)
		}
	}

	return fee, nil
}

// ListMemberFees lists a member's fee records
func (s *MembershipService) ListMemberFees(ctx context.Context, memberID uint, offset, limit int) ([]*models.MembershipFee, int64, error) {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return nil, 0, err
	}
	return s.feeRepo.ListByMember(ctx, memberID, offset, limit)
}

// ListFees lists fee records with optional filters
func (s *MembershipService) ListFees(ctx context.Context, memberID uint, paymentStatus string, offset, limit int) ([]*models.MembershipFee, int64, error) {
	return s.feeRepo.List(ctx, memberID, paymentStatus, offset, limit)
}
