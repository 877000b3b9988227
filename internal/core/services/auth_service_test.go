package services

import (
	"context"
	"testing"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 60,
		},
	}
}

func activeUser(t *testing.T, plaintext string) *models.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	return &models.User{
		UserID:        1,
		Username:      "zhang_wei",
		Email:         "zhang_wei@gxas.org.cn",
		PasswordHash:  hash,
		Role:          models.RoleMember,
		AccountStatus: models.AccountActive,
	}
}

func TestLoginUnknownUserAndWrongPasswordLookIdentical(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	userRepo.On("GetByUsername", mock.Anything, "nobody").
		Return(nil, gorm.ErrRecordNotFound)

	_, errUnknown := svc.Login(context.Background(), &LoginInput{
		Username: "nobody", Password: "whatever",
	})

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "zhang_wei").Return(user, nil)

	_, errWrongPass := svc.Login(context.Background(), &LoginInput{
		Username: "zhang_wei", Password: "wrong-password",
	})

	assert.ErrorIs(t, errUnknown, domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, errWrongPass, domain.ErrAuthenticationFailed)
	// Same sentinel, same message: a caller cannot tell the cases apart.
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginStatusGateRunsBeforePasswordCheck(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	user := activeUser(t, "correct-password")
	user.AccountStatus = models.AccountSuspended
	userRepo.On("GetByUsername", mock.Anything, "zhang_wei").Return(user, nil)

	// Even with the wrong password the gated status answers first.
	_, err := svc.Login(context.Background(), &LoginInput{
		Username: "zhang_wei", Password: "wrong-password",
	})

	var inactive *domain.AccountInactiveError
	require.ErrorAs(t, err, &inactive)
	assert.Equal(t, models.AccountSuspended, inactive.Status)
	assert.Equal(t, "账户已被暂停，请联系管理员", inactive.StatusMessage())
}

func TestLoginSuccessIssuesTokenAndStampsLastLogin(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "zhang_wei").Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.Login(context.Background(), &LoginInput{
		Username: "zhang_wei", Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "zhang_wei", result.User.Username)
	userRepo.AssertCalled(t, "UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time"))
}

func TestLoginSucceedsWhenLastLoginStampFails(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "zhang_wei").Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).
		Return(gorm.ErrInvalidDB)

	result, err := svc.Login(context.Background(), &LoginInput{
		Username: "zhang_wei", Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestRegisterChecksUsernameBeforeEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	// Both taken: the username conflict wins.
	userRepo.On("ExistsByUsername", mock.Anything, "zhang_wei").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "zhang_wei",
		Email:    "taken@gxas.org.cn",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestRegisterEmailConflict(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	userRepo.On("ExistsByUsername", mock.Anything, "li_na").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "taken@gxas.org.cn").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "li_na",
		Email:    "taken@gxas.org.cn",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterCreatesActiveMemberAndSignsIn(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, testConfig())

	userRepo.On("ExistsByUsername", mock.Anything, "li_na").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "li_na@gxas.org.cn").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*models.User)
			u.UserID = 42
			assert.Equal(t, models.RoleMember, u.Role)
			assert.Equal(t, models.AccountActive, u.AccountStatus)
			assert.NotEqual(t, "secret123", u.PasswordHash)
		}).
		Return(nil)

	result, err := svc.Register(context.Background(), &RegisterInput{
		Username: "li_na",
		Email:    "li_na@gxas.org.cn",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(42), result.User.UserID)
}

func TestChangePasswordRules(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmation mismatch", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo), testConfig())
		err := svc.ChangePassword(ctx, 1, &ChangePasswordInput{
			OldPassword: "old", NewPassword: "new-one", ConfirmPassword: "new-two",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("wrong old password", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser(t, "current-pass")
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)

		err := svc.ChangePassword(ctx, 1, &ChangePasswordInput{
			OldPassword: "not-current", NewPassword: "brand-new", ConfirmPassword: "brand-new",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidOldPassword)
	})

	t.Run("new password equals current", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser(t, "current-pass")
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)

		err := svc.ChangePassword(ctx, 1, &ChangePasswordInput{
			OldPassword: "current-pass", NewPassword: "current-pass", ConfirmPassword: "current-pass",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordUnchanged)
	})

	t.Run("success replaces the hash", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewAuthService(userRepo, testConfig())
		user := activeUser(t, "current-pass")
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)
		userRepo.On("UpdatePasswordHash", mock.Anything, uint(1), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				hash := args.Get(2).(string)
				assert.True(t, password.Verify("brand-new", hash))
			}).
			Return(nil)

		err := svc.ChangePassword(ctx, 1, &ChangePasswordInput{
			OldPassword: "current-pass", NewPassword: "brand-new", ConfirmPassword: "brand-new",
		})
		require.NoError(t, err)
	})
}

func TestValidateAccessTokenRoundtrip(t *testing.T) {
	userRepo := new(mockUserRepo)
	cfg := testConfig()
	svc := NewAuthService(userRepo, cfg)

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "zhang_wei").Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.Login(context.Background(), &LoginInput{
		Username: "zhang_wei", Password: "correct-password",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "zhang_wei", claims.Username)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
