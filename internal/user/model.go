package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("display name is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents a booker in the system: a researcher or an admin of the
// equipment platform.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Department   *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsAdmin      bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Name       string
	Department string
	IsActive   *bool // Use pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateRequest holds fields that may be changed on an existing user.
// Nil means "leave unchanged".
type UpdateRequest struct {
	DisplayName *string
	Department  *string
	IsActive    *bool
	IsAdmin     *bool
}
