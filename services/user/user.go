package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "visionhealth/database/repository/user"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueToken returns a bearer credential for email if it belongs to a known user.
func (s *DefaultUserService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrUnknownIdentity
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUnknownIdentity
	}
	token, err := s.Tokens.GenerateToken(email)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// CreateUser stores a new ordinary user. Roles are never accepted from the client.
func (s *DefaultUserService) CreateUser(ctx context.Context, u models.User) (*models.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return nil, ErrEmailRequired
	}
	u.ID = primitive.NilObjectID
	u.Role = ""

	id, err := s.Repo.Create(ctx, &u)
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return &models.InsertResult{Acknowledged: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
