package catalogRepo

import (
	"context"
	"errors"

	"visionhealth/models"
)

var (
	ErrDuplicateService = errors.New("a service with this title already exists")
	ErrServiceNotFound  = errors.New("service not found")
)

// CatalogRepository defines methods for appointment service data access.
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.AppointmentService, error)
	// GetSpecialties returns the title of every service.
	GetSpecialties(ctx context.Context) ([]models.Specialty, error)
	Create(ctx context.Context, service *models.AppointmentService) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}
