package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "visionhealth/database/repository/booking"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func validate(req models.Booking) error {
	if strings.TrimSpace(req.AppointmentDate) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Treatment) == "" ||
		strings.TrimSpace(req.Slot) == "" {
		return ErrInvalidBooking
	}
	return nil
}

func (s *DefaultBookingService) Book(ctx context.Context, req models.Booking) (*models.BookingResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByKey(ctx, req.Key())
	if err != nil {
		return nil, err
	}
	if decision := TryBook(req, existing); !decision.Accepted {
		return &models.BookingResult{Acknowledged: false, Message: decision.Reason}, nil
	}

	// Payment state is only ever set by settlement.
	req.ID = primitive.NilObjectID
	req.Paid = false
	req.TransactionID = ""

	id, err := s.Repo.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			// A concurrent request with the same key won the race.
			s.Logger.Info("booking rejected by unique index",
				zap.String("date", req.AppointmentDate),
				zap.String("treatment", req.Treatment))
			return &models.BookingResult{Acknowledged: false, Message: ConflictMessage(req.AppointmentDate)}, nil
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if s.Availability != nil {
		s.Availability.Invalidate(ctx, req.AppointmentDate)
	}
	s.Logger.Info("booking created", zap.String("id", id), zap.String("date", req.AppointmentDate))
	return &models.BookingResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *DefaultBookingService) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return s.Repo.FindByEmail(ctx, email)
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}
