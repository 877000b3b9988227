package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/pkg/jwt"
	"gxas-memberhub/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register creates a member account and signs it in immediately.
// There is no email verification gate: a fresh account is active.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	return s.createUser(ctx, input, models.RoleMember)
}

// CreateAdmin creates an admin account. Only reachable through an
// admin-gated route.
func (s *AuthService) CreateAdmin(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	return s.createUser(ctx, input, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, input *RegisterInput, role string) (*AuthResponse, error) {
	// Username checked before email: the first conflict wins.
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          role,
		AccountStatus: models.AccountActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Username, user.Role)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user.
//
// An unknown username and a wrong password fail with the same error so a
// caller cannot probe which half of the pair was wrong. The account-status
// gate sits before password verification and is deliberately specific —
// inherited behavior, kept as-is.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if user.AccountStatus != models.AccountActive {
		return nil, &domain.AccountInactiveError{Status: user.AccountStatus}
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrAuthenticationFailed
	}

	// Best-effort stamp; a failed write must not fail the login.
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, time.Now()); err != nil {
		log.Printf("⚠️ Failed to record last login for user %d: %v", user.UserID, err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// ChangePassword replaces the caller's password hash
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.PasswordHash) {
		return domain.ErrInvalidOldPassword
	}

	// Re-using the current password is rejected, not silently accepted.
	if password.Verify(input.NewPassword, user.PasswordHash) {
		return domain.ErrPasswordUnchanged
	}

	hash, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user %d", userID)
	return nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.UserID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
}
