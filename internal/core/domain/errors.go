package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Auth errors
var (
	// ErrAuthenticationFailed covers both "no such user" and "wrong
	// password". Callers must never tell the two apart.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	ErrInvalidOldPassword = errors.New("old password is incorrect")
	ErrPasswordMismatch   = errors.New("new password and confirmation do not match")
	ErrPasswordUnchanged  = errors.New("new password must differ from the current password")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already registered")
)

// Account statuses. The vocabulary lives here so the status gate and the
// persistence models agree on one definition; only an active account may
// log in.
const (
	AccountActive    = "active"
	AccountPending   = "pending"
	AccountSuspended = "suspended"
	AccountBanned    = "banned"
)

// AccountInactiveError is returned when a known account is gated by its
// status. Unlike credential failures this is deliberately visible to the
// caller, status included.
type AccountInactiveError struct {
	Status string
}

func (e *AccountInactiveError) Error() string {
	return fmt.Sprintf("account is not active: %s", e.Status)
}

// StatusMessage returns the human message for the gated status
func (e *AccountInactiveError) StatusMessage() string {
	switch e.Status {
	case AccountSuspended:
		return "账户已被暂停，请联系管理员"
	case AccountBanned:
		return "账户已被禁止，请联系管理员"
	case AccountPending:
		return "账户正在审核中，请稍后再试"
	default:
		return "账户状态异常，请联系管理员"
	}
}

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyProcessed    = errors.New("application has already been processed")
	ErrInvalidDecision     = errors.New("invalid review decision")
)

// Member & fee errors
var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrProfileAlreadyExists   = errors.New("member profile already exists")
	ErrInvalidMembershipLevel = errors.New("invalid membership level")
	ErrFeeNotFound            = errors.New("fee record not found")
)

// Message errors
var (
	ErrMessageNotFound = errors.New("message not found or not accessible")
	ErrNoAdminAccount  = errors.New("no admin account available to receive the message")
)

// User management errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
)
