package services

import (
	"context"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService aggregates the admin overview numbers
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User statistics
	TotalUsers  int64 `json:"total_users"`
	TotalAdmins int64 `json:"total_admins"`

	// Member statistics by standing
	TotalMembers     int64 `json:"total_members"`
	NormalMembers    int64 `json:"normal_members"`
	OwingMembers     int64 `json:"owing_members"`
	FrozenMembers    int64 `json:"frozen_members"`
	WithdrawnMembers int64 `json:"withdrawn_members"`

	// Application statistics
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`

	// Fee statistics
	FeesCollectedThisYear float64 `json:"fees_collected_this_year"`
	PaidFeesThisYear      int64   `json:"paid_fees_this_year"`

	// Messages
	UnreadMessages int64 `json:"unread_messages"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context, adminID uint) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ?", models.RoleAdmin).Count(&data.TotalAdmins)

	// Member counts by standing
	s.db.WithContext(ctx).Table("members").Count(&data.TotalMembers)
	s.db.WithContext(ctx).Table("members").Where("membership_status = ?", models.MembershipNormal).Count(&data.NormalMembers)
	s.db.WithContext(ctx).Table("members").Where("membership_status = ?", models.MembershipOwing).Count(&data.OwingMembers)
	s.db.WithContext(ctx).Table("members").Where("membership_status = ?", models.MembershipFrozen).Count(&data.FrozenMembers)
	s.db.WithContext(ctx).Table("members").Where("membership_status = ?", models.MembershipWithdrawn).Count(&data.WithdrawnMembers)

	// Application counts by status
	s.db.WithContext(ctx).Table("applications").Where("status = ?", models.ApplicationPending).Count(&data.PendingApplications)
	s.db.WithContext(ctx).Table("applications").Where("status = ?", models.ApplicationApproved).Count(&data.ApprovedApplications)
	s.db.WithContext(ctx).Table("applications").Where("status = ?", models.ApplicationRejected).Count(&data.RejectedApplications)

	// Fees collected this calendar year
	startOfYear := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.Local)
	s.db.WithContext(ctx).Table("membership_fees").
		Where("payment_status = ? AND payment_date >= ?", models.FeePaid, startOfYear).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.FeesCollectedThisYear)
	s.db.WithContext(ctx).Table("membership_fees").
		Where("payment_status = ? AND payment_date >= ?", models.FeePaid, startOfYear).
		Count(&data.PaidFeesThisYear)

	// Unread messages in the admin's inbox
	s.db.WithContext(ctx).Table("messages").
		Where("receiver_id = ? AND is_read = ?", adminID, false).
		Count(&data.UnreadMessages)

	return data, nil
}
