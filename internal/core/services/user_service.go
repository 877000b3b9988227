package services

import (
	"context"
	"errors"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles admin-side user management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// UpdateUserInput represents an admin update to a user record. Nil fields
// stay untouched.
type UpdateUserInput struct {
	Email         *string `json:"email"`
	Role          *string `json:"role"`
	AccountStatus *string `json:"account_status"`
	Password      *string `json:"password"`
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	out := &ListUsersOutput{
		Users: make([]*models.UserResponse, 0, len(users)),
		Total: total,
	}
	for _, u := range users {
		out.Users = append(out.Users, u.ToResponse())
	}
	return out, nil
}

// UpdateUser applies an admin update. An admin may not change their own
// role — demoting the last admin through their own session is a lockout.
func (s *UserService) UpdateUser(ctx context.Context, actorID, targetID uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Role != nil && actorID == targetID {
		return nil, domain.ErrCannotChangeOwnRole
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.AccountStatus != nil {
		user.AccountStatus = *input.AccountStatus
	}
	if input.Password != nil {
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteUser removes a user. Self-deletion through the admin path is
// rejected.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return domain.ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.userRepo.Delete(ctx, targetID)
}
