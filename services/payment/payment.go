package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	bookingRepo "visionhealth/database/repository/booking"
	paymentRepo "visionhealth/database/repository/payment"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount    = errors.New("price must be greater than zero")
	ErrInvalidPayment   = errors.New("a valid bookingId and transactionId are required")
	ErrDuplicatePayment = paymentRepo.ErrDuplicatePayment
	ErrBookingNotFound  = bookingRepo.ErrBookingNotFound
	ErrAlreadyPaid      = bookingRepo.ErrAlreadyPaid
)

// reconcileBatch caps how many unsettled payments one reconciliation run handles.
const reconcileBatch = 100

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (*models.PaymentIntentResponse, error)
	Settle(ctx context.Context, p models.Payment) (*models.InsertResult, error)
	Reconcile(ctx context.Context) (int, error)
}

type DefaultPaymentService struct {
	Gateway  Gateway
	Currency string
	Payments paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateIntent converts price from major to minor currency units and asks the
// gateway for a client secret.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, price float64) (*models.PaymentIntentResponse, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	secret, err := s.Gateway.CreatePaymentIntent(ctx, amount, s.Currency)
	if err != nil {
		return nil, err
	}
	return &models.PaymentIntentResponse{ClientSecret: secret}, nil
}

// Settle records the payment and marks the referenced booking paid. The booking
// must exist and must not already be paid by another transaction. The payment is
// stored unsettled first; if the booking update fails transiently, Reconcile
// completes it later.
func (s *DefaultPaymentService) Settle(ctx context.Context, p models.Payment) (*models.InsertResult, error) {
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	if p.TransactionID == "" || !primitive.IsValidObjectID(p.BookingID) {
		return nil, ErrInvalidPayment
	}

	b, err := s.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Paid && b.TransactionID != p.TransactionID {
		return nil, ErrAlreadyPaid
	}

	p.ID = primitive.NilObjectID
	p.Settled = false
	p.Failed = false
	p.FailureReason = ""
	p.CreatedAt = s.now()

	id, err := s.Payments.Create(ctx, &p)
	if err != nil {
		return nil, err
	}
	if err := s.settle(ctx, p); err != nil {
		s.Logger.Error("payment recorded but booking not marked paid",
			zap.String("payment", id), zap.String("booking", p.BookingID), zap.Error(err))
		return nil, err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// permanent reports whether a settlement error can never succeed on retry.
func permanent(err error) bool {
	return errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAlreadyPaid)
}

// settle marks the booking paid and then the payment settled. A permanent
// failure parks the payment as failed so it is not retried.
func (s *DefaultPaymentService) settle(ctx context.Context, p models.Payment) error {
	if err := s.Bookings.MarkPaid(ctx, p.BookingID, p.TransactionID); err != nil {
		if permanent(err) {
			if ferr := s.Payments.MarkFailed(ctx, p.ID, err.Error()); ferr != nil {
				s.Logger.Error("failed to park unsettleable payment",
					zap.String("payment", p.ID.Hex()), zap.Error(ferr))
			}
		}
		return fmt.Errorf("mark booking %s paid: %w", p.BookingID, err)
	}
	return s.Payments.MarkSettled(ctx, p.ID)
}

// Reconcile re-drives settlement for payments whose booking update never landed.
// It returns how many payments were settled. Payments that can never settle are
// marked failed and dropped from later runs.
func (s *DefaultPaymentService) Reconcile(ctx context.Context) (int, error) {
	pending, err := s.Payments.FindUnsettled(ctx, reconcileBatch)
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, p := range pending {
		if err := s.settle(ctx, p); err != nil {
			if permanent(err) {
				s.Logger.Error("reconcile: payment cannot settle, marked failed",
					zap.String("payment", p.ID.Hex()), zap.String("booking", p.BookingID), zap.Error(err))
				continue
			}
			s.Logger.Warn("reconcile: settlement failed",
				zap.String("payment", p.ID.Hex()), zap.String("booking", p.BookingID), zap.Error(err))
			continue
		}
		settled++
	}
	return settled, nil
}
