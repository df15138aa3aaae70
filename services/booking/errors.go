package booking

import (
	"errors"

	bookingRepo "visionhealth/database/repository/booking"
)

var (
	ErrInvalidBooking  = errors.New("appointmentDate, email, treatment and slot are required")
	ErrBookingNotFound = bookingRepo.ErrBookingNotFound
)
