package user

import (
	"context"

	userRepo "visionhealth/database/repository/user"
	"visionhealth/models"
)

type UserService interface {
	// Identity
	IssueToken(ctx context.Context, email string) (string, error)

	// User Management
	CreateUser(ctx context.Context, user models.User) (*models.InsertResult, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// Roles
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, callerEmail, targetID string) (*models.UpdateResult, error)
}

// TokenGenerator signs bearer credentials for an email.
type TokenGenerator interface {
	GenerateToken(email string) (string, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens TokenGenerator
}
