package user

import (
	"context"

	"visionhealth/models"
)

// IsAdmin reports whether email belongs to an administrator. Unknown users and
// users without a role are not administrators.
func (s *DefaultUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return u.IsAdmin(), nil
}

// Promote grants the administrator role to targetID. Only an administrator may
// promote; the caller is checked before the target is looked at.
func (s *DefaultUserService) Promote(ctx context.Context, callerEmail, targetID string) (*models.UpdateResult, error) {
	admin, err := s.IsAdmin(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAdmin
	}
	return s.Repo.SetRole(ctx, targetID, models.RoleAdmin)
}
