package services

import (
	"context"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"

	"github.com/stretchr/testify/mock"
)

// mockUserRepo is a hand-written testify mock for UserRepository
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	var users []*models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) FirstAdmin(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateLastActive(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// mockApplicationRepo is a hand-written testify mock for ApplicationRepository
type mockApplicationRepo struct {
	mock.Mock
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *mockApplicationRepo) List(ctx context.Context, status string, offset, limit int) ([]*models.Application, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	var apps []*models.Application
	if args.Get(0) != nil {
		apps = args.Get(0).([]*models.Application)
	}
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *mockApplicationRepo) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockApplicationRepo) MarkReviewed(ctx context.Context, id uint, status string, reviewerID uint, notes string, at time.Time) (int64, error) {
	args := m.Called(ctx, id, status, reviewerID, notes, at)
	return args.Get(0).(int64), args.Error(1)
}

// mockMemberRepo is a hand-written testify mock for MemberRepository
type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *mockMemberRepo) GetByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *mockMemberRepo) Update(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberRepo) UpdateStatus(ctx context.Context, memberID uint, status string) error {
	args := m.Called(ctx, memberID, status)
	return args.Error(0)
}

func (m *mockMemberRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMemberRepo) List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	var members []*models.Member
	if args.Get(0) != nil {
		members = args.Get(0).([]*models.Member)
	}
	return members, args.Get(1).(int64), args.Error(2)
}

func (m *mockMemberRepo) ListByStatus(ctx context.Context, status string) ([]*models.Member, error) {
	args := m.Called(ctx, status)
	var members []*models.Member
	if args.Get(0) != nil {
		members = args.Get(0).([]*models.Member)
	}
	return members, args.Error(1)
}

// mockFeeRepo is a hand-written testify mock for FeeRepository
type mockFeeRepo struct {
	mock.Mock
}

func (m *mockFeeRepo) Create(ctx context.Context, fee *models.MembershipFee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *mockFeeRepo) GetByID(ctx context.Context, id uint) (*models.MembershipFee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipFee), args.Error(1)
}

func (m *mockFeeRepo) Update(ctx context.Context, fee *models.MembershipFee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *mockFeeRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFeeRepo) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.MembershipFee, int64, error) {
	args := m.Called(ctx, memberID, offset, limit)
	var fees []*models.MembershipFee
	if args.Get(0) != nil {
		fees = args.Get(0).([]*models.MembershipFee)
	}
	return fees, args.Get(1).(int64), args.Error(2)
}

func (m *mockFeeRepo) List(ctx context.Context, memberID uint, paymentStatus string, offset, limit int) ([]*models.MembershipFee, int64, error) {
	args := m.Called(ctx, memberID, paymentStatus, offset, limit)
	var fees []*models.MembershipFee
	if args.Get(0) != nil {
		fees = args.Get(0).([]*models.MembershipFee)
	}
	return fees, args.Get(1).(int64), args.Error(2)
}

func (m *mockFeeRepo) GetEffective(ctx context.Context, memberID uint, asOf time.Time) (*models.MembershipFee, error) {
	args := m.Called(ctx, memberID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipFee), args.Error(1)
}

// mockMessageRepo is a hand-written testify mock for MessageRepository
type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *mockMessageRepo) GetForReceiver(ctx context.Context, id, receiverID uint) (*models.Message, error) {
	args := m.Called(ctx, id, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *mockMessageRepo) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	var msgs []*models.Message
	if args.Get(0) != nil {
		msgs = args.Get(0).([]*models.Message)
	}
	return msgs, args.Get(1).(int64), args.Error(2)
}

func (m *mockMessageRepo) ListAll(ctx context.Context, isRead *bool, offset, limit int) ([]*models.Message, int64, error) {
	args := m.Called(ctx, isRead, offset, limit)
	var msgs []*models.Message
	if args.Get(0) != nil {
		msgs = args.Get(0).([]*models.Message)
	}
	return msgs, args.Get(1).(int64), args.Error(2)
}

func (m *mockMessageRepo) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
