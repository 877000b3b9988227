package repositories

import (
	"context"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// feeRepository implements FeeRepository interface
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

// Create creates a new fee record
func (r *feeRepository) Create(ctx context.Context, fee *models.MembershipFee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

// GetByID gets a fee record by ID
func (r *feeRepository) GetByID(ctx context.Context, id uint) (*models.MembershipFee, error) {
	var fee models.MembershipFee
	err := r.db.WithContext(ctx).Where("fee_id = ?", id).First(&fee).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// Update updates a fee record
func (r *feeRepository) Update(ctx context.Context, fee *models.MembershipFee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

// Delete deletes a fee record
func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MembershipFee{}, id).Error
}

// ListByMember lists a member's fee records, most recent payment first
func (r *feeRepository) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.MembershipFee, int64, error) {
	var fees []*models.MembershipFee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MembershipFee{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("payment_date DESC").
		Offset(offset).Limit(limit).
		Find(&fees).Error
	if err != nil {
		return nil, 0, err
	}

	return fees, total, nil
}

// List lists fee records with optional member and payment-status filters
func (r *feeRepository) List(ctx context.Context, memberID uint, paymentStatus string, offset, limit int) ([]*models.MembershipFee, int64, error) {
	var fees []*models.MembershipFee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MembershipFee{})
	if memberID != 0 {
		query = query.Where("member_id = ?", memberID)
	}
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member").
		Preload("Member.User").
		Order("payment_date DESC").
		Offset(offset).Limit(limit).
		Find(&fees).Error
	if err != nil {
		return nil, 0, err
	}

	return fees, total, nil
}

// GetEffective returns the paid fee record whose interval covers asOf.
// Overlapping intervals may exist; the latest-expiring one wins so the
// answer is deterministic.
func (r *feeRepository) GetEffective(ctx context.Context, memberID uint, asOf time.Time) (*models.MembershipFee, error) {
	var fee models.MembershipFee
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND payment_status = ?", memberID, models.FeePaid).
		Where("valid_from <= ? AND valid_until >= ?", asOf, asOf).
		Order("valid_until DESC").
		First(&fee).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}
