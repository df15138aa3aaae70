package bookingRepo

import (
	"context"
	"errors"

	"visionhealth/models"
)

var (
	// ErrDuplicateBooking is returned when the compound unique index on the
	// conflict key rejects an insert.
	ErrDuplicateBooking = errors.New("booking already exists for this date, email and treatment")
	ErrBookingNotFound  = errors.New("booking not found")

	// ErrAlreadyPaid is returned when a booking was paid by a different transaction.
	ErrAlreadyPaid = errors.New("booking is already paid")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// FindByDate returns the treatment and slot of every booking on date.
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	// FindByEmail returns every booking made by email.
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// FindByKey returns bookings matching the conflict key exactly.
	FindByKey(ctx context.Context, key models.ConflictKey) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Create inserts a booking and returns its hex id.
	Create(ctx context.Context, booking *models.Booking) (string, error)
	// MarkPaid sets paid=true and the transaction id. Repeating it with the same
	// transaction id succeeds; a different one gets ErrAlreadyPaid.
	MarkPaid(ctx context.Context, id, transactionID string) error
}
