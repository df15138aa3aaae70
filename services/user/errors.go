package user

import (
	"errors"

	userRepo "visionhealth/database/repository/user"
)

var (
	// ErrUnknownIdentity is returned when a token is requested for an email
	// with no user record.
	ErrUnknownIdentity = errors.New("no user registered with this email")
	ErrNotAdmin        = errors.New("caller is not an administrator")
	ErrEmailRequired   = errors.New("email is required")
	ErrUserNotFound    = userRepo.ErrUserNotFound
)
