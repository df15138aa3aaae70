package userRepo

import (
	"context"
	"errors"

	"visionhealth/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetByEmail retrieves a user by email; a missing user is (nil, nil).
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record and returns its hex id.
	Create(ctx context.Context, user *models.User) (string, error)
	// SetRole updates the role of the user with the given id.
	SetRole(ctx context.Context, id, role string) (*models.UpdateResult, error)
}
