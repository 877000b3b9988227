package repositories

import (
	"context"

	"gxas-memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member profile
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID with its user preloaded
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("member_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByUserID gets the member profile belonging to a user
func (r *memberRepository) GetByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member profile
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// UpdateStatus sets the membership status only. Writing the same value
// twice is harmless, which keeps the fee cascade safe to retry.
func (r *memberRepository) UpdateStatus(ctx context.Context, memberID uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Member{}).
		Where("member_id = ?", memberID).
		Update("membership_status", status).Error
}

// Delete deletes a member profile
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, id).Error
}

// List lists members, optionally filtered by membership status
func (r *memberRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{})
	if status != "" {
		query = query.Where("membership_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("member_id ASC").
		Offset(offset).Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// ListByStatus returns every member currently in the given status
func (r *memberRepository) ListByStatus(ctx context.Context, status string) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("membership_status = ?", status).
		Find(&members).Error
	return members, err
}
