package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "visionhealth/database/repository/booking"
	catalogRepo "visionhealth/database/repository/catalog"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrInvalidService = errors.New("service title is required")

// AvailabilityService answers which slots remain open and manages the catalog.
type AvailabilityService interface {
	ForDate(ctx context.Context, date string) ([]models.AppointmentService, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
	Invalidate(ctx context.Context, date string)
	AddService(ctx context.Context, service models.AppointmentService) (*models.InsertResult, error)
	RemoveService(ctx context.Context, id string) (*models.DeleteResult, error)
}

// DefaultAvailabilityService is the production implementation. Cache may be nil.
type DefaultAvailabilityService struct {
	Catalog  catalogRepo.CatalogRepository
	Bookings bookingRepo.BookingRepository
	Cache    Cache
	Logger   *zap.Logger
}

// ForDate returns the catalog with each service's slots narrowed to the ones still
// open on date. The cache version is read before the bookings so a fill racing an
// invalidation is stored under a version that is no longer served.
func (s *DefaultAvailabilityService) ForDate(ctx context.Context, date string) ([]models.AppointmentService, error) {
	var version string
	cacheable := false
	if s.Cache != nil {
		v, err := s.Cache.Version(ctx, date)
		if err != nil {
			s.Logger.Warn("availability cache version read failed", zap.String("date", date), zap.Error(err))
		} else {
			version, cacheable = v, true
			cached, err := s.Cache.Get(ctx, date, version)
			if err == nil {
				return cached, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				s.Logger.Warn("availability cache read failed", zap.String("date", date), zap.Error(err))
			}
		}
	}

	services, err := s.Catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	booked, err := s.Bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	open := AvailableSlots(services, booked)

	if cacheable {
		if err := s.Cache.Set(ctx, date, version, open); err != nil {
			s.Logger.Warn("availability cache write failed", zap.String("date", date), zap.Error(err))
		}
	}
	return open, nil
}

func (s *DefaultAvailabilityService) Specialties(ctx context.Context) ([]models.Specialty, error) {
	return s.Catalog.GetSpecialties(ctx)
}

// Invalidate drops cached availability for date. Failures are logged only; the
// entry expires on its own.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, date); err != nil {
		s.Logger.Warn("availability cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) invalidateAll(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateAll(ctx); err != nil {
		s.Logger.Warn("availability cache flush failed", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) AddService(ctx context.Context, service models.AppointmentService) (*models.InsertResult, error) {
	service.ServiceTitle = strings.TrimSpace(service.ServiceTitle)
	if service.ServiceTitle == "" {
		return nil, ErrInvalidService
	}
	service.ID = primitive.NilObjectID

	id, err := s.Catalog.Create(ctx, &service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateService) {
			return &models.InsertResult{Acknowledged: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	s.invalidateAll(ctx)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *DefaultAvailabilityService) RemoveService(ctx context.Context, id string) (*models.DeleteResult, error) {
	deleted, err := s.Catalog.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateAll(ctx)
	return &models.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
