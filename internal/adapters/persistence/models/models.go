package models

import (
	"time"

	"gxas-memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users & Identity
// ============================================================

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Account statuses, aliased from the domain vocabulary so the status gate
// and the stored values can never drift apart.
const (
	AccountActive    = domain.AccountActive
	AccountPending   = domain.AccountPending
	AccountSuspended = domain.AccountSuspended
	AccountBanned    = domain.AccountBanned
)

// User represents users table
type User struct {
	UserID        uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username      string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	Role          string     `gorm:"size:20;default:'member'" json:"role"`
	AccountStatus string     `gorm:"size:20;default:'active'" json:"account_status"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin     *time.Time `json:"last_login"`
	LastActive    *time.Time `json:"last_active"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO — everything a caller may see; never the password hash.
type UserResponse struct {
	UserID        uint       `json:"user_id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	AccountStatus string     `json:"account_status"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		AccountStatus: u.AccountStatus,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}

// ============================================================
// Membership Applications
// ============================================================

// Application statuses as stored by the hosted system. 待审核 is the sole
// initial state; both review outcomes are terminal.
const (
	ApplicationPending  = "待审核"
	ApplicationApproved = "审核通过"
	ApplicationRejected = "审核不通过"
)

// Application represents applications table
type Application struct {
	ApplicationID     uint       `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicantName     string     `gorm:"size:100;not null" json:"applicant_name"`
	ApplicantEmail    string     `gorm:"size:100;not null" json:"applicant_email"`
	ApplicantPhone    string     `gorm:"size:30" json:"applicant_phone"`
	WorkUnit          string     `gorm:"size:200" json:"work_unit"`
	ApplicationReason string     `gorm:"type:text" json:"application_reason"`
	Status            string     `gorm:"size:20;not null;default:'待审核';index" json:"status"`
	ApplicationDate   time.Time  `gorm:"autoCreateTime" json:"application_date"`
	ProcessedBy       *uint      `json:"processed_by"`
	ProcessedDate     *time.Time `json:"processed_date"`
	ReviewNotes       string     `gorm:"type:text" json:"review_notes"`

	Reviewer *User `gorm:"foreignKey:ProcessedBy" json:"reviewer,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// IsProcessed reports whether the application has reached a terminal state.
func (a *Application) IsProcessed() bool {
	return a.Status != ApplicationPending
}

// ============================================================
// Members
// ============================================================

// Membership levels (empty string = ordinary member)
const (
	LevelDirector       = "理事"
	LevelSecretary      = "秘书长"
	LevelViceChairman   = "副理事长"
	LevelChairman       = "理事长"
)

// ValidMembershipLevel reports whether level is one of the recognized
// office levels. Empty means ordinary member.
func ValidMembershipLevel(level string) bool {
	switch level {
	case "", LevelDirector, LevelSecretary, LevelViceChairman, LevelChairman:
		return true
	}
	return false
}

// Membership statuses
const (
	MembershipNormal    = "正常"
	MembershipOwing     = "欠费"
	MembershipFrozen    = "冻结"
	MembershipWithdrawn = "退会"
)

// Member represents members table. One profile per user, enforced by the
// unique index on user_id.
type Member struct {
	MemberID         uint      `gorm:"primaryKey;column:member_id" json:"member_id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName         string    `gorm:"size:100;not null" json:"full_name"`
	Gender           string    `gorm:"size:10" json:"gender"`
	BirthDate        *time.Time `gorm:"type:date" json:"birth_date"`
	Phone            string    `gorm:"size:30" json:"phone"`
	Address          string    `gorm:"size:255" json:"address"`
	MembershipLevel  string    `gorm:"size:20" json:"membership_level"`
	MembershipStatus string    `gorm:"size:20;not null;default:'正常'" json:"membership_status"`
	ProfileUpdatedAt time.Time `gorm:"autoUpdateTime" json:"profile_updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// ============================================================
// Membership Fees
// ============================================================

// Fee payment statuses
const (
	FeeUnpaid   = "待支付"
	FeePaid     = "已支付"
	FeeRefunded = "已退款"
)

// MembershipFee represents membership_fees table
type MembershipFee struct {
	FeeID         uint      `gorm:"primaryKey;column:fee_id" json:"fee_id"`
	MemberID      uint      `gorm:"not null;index" json:"member_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	ValidFrom     time.Time `gorm:"type:date;not null" json:"valid_from"`
	ValidUntil    time.Time `gorm:"type:date;not null" json:"valid_until"`
	PaymentMethod string    `gorm:"size:30" json:"payment_method"`
	PaymentStatus string    `gorm:"size:20;not null;default:'待支付';index" json:"payment_status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (MembershipFee) TableName() string {
	return "membership_fees"
}

// Covers reports whether the fee interval contains t (inclusive bounds).
func (f *MembershipFee) Covers(t time.Time) bool {
	return !f.ValidFrom.After(t) && !f.ValidUntil.Before(t)
}

// ============================================================
// Messages
// ============================================================

// Message represents messages table
type Message struct {
	MessageID  uint      `gorm:"primaryKey;column:message_id" json:"message_id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Subject    string    `gorm:"size:200" json:"subject"`
	Content    string    `gorm:"type:text" json:"content"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	FileName   string    `gorm:"size:255" json:"file_name,omitempty"`
	FilePath   string    `gorm:"size:255" json:"file_path,omitempty"`
	FileSize   int64     `json:"file_size,omitempty"`
	FileType   string    `gorm:"size:100" json:"file_type,omitempty"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Application{},
		&Member{},
		&MembershipFee{},
		&Message{},
	)
}
