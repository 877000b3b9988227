package repositories

import (
	"context"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FirstAdmin returns the admin account with the lowest user id.
	FirstAdmin(ctx context.Context) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdateLastActive(ctx context.Context, id uint, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

// ApplicationRepository defines membership application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Application, int64, error)
	CountPending(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
	// MarkReviewed performs the terminal transition with compare-and-set
	// semantics: the update only applies while status is still 待审核.
	// Returns the number of rows changed (0 means a concurrent reviewer won).
	MarkReviewed(ctx context.Context, id uint, status string, reviewerID uint, notes string, at time.Time) (int64, error)
}

// MemberRepository defines member profile repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	UpdateStatus(ctx context.Context, memberID uint, status string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Member, error)
}

// FeeRepository defines membership fee repository interface
type FeeRepository interface {
	Create(ctx context.Context, fee *models.MembershipFee) error
	GetByID(ctx context.Context, id uint) (*models.MembershipFee, error)
	Update(ctx context.Context, fee *models.MembershipFee) error
	Delete(ctx context.Context, id uint) error
	ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.MembershipFee, int64, error)
	List(ctx context.Context, memberID uint, paymentStatus string, offset, limit int) ([]*models.MembershipFee, int64, error)
	// GetEffective returns the paid fee record covering asOf with the
	// latest valid_until, or gorm.ErrRecordNotFound when none covers it.
	GetEffective(ctx context.Context, memberID uint, asOf time.Time) (*models.MembershipFee, error)
}

// MessageRepository defines message repository interface
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	GetForReceiver(ctx context.Context, id, receiverID uint) (*models.Message, error)
	ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error)
	ListAll(ctx context.Context, isRead *bool, offset, limit int) ([]*models.Message, int64, error)
	CountUnread(ctx context.Context, receiverID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
}
