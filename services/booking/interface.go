package booking

import (
	"context"

	bookingRepo "visionhealth/database/repository/booking"
	"visionhealth/models"

	"go.uber.org/zap"
)

type BookingService interface {
	// Book inserts req unless a booking with the same conflict key exists.
	Book(ctx context.Context, req models.Booking) (*models.BookingResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// Invalidator drops cached availability for a date after it changes.
type Invalidator interface {
	Invalidate(ctx context.Context, date string)
}

// DefaultBookingService is the production implementation. Availability may be nil.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Availability Invalidator
	Logger       *zap.Logger
}
