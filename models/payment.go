package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a captured charge for a booking. Settled flips once the
// referenced booking has been marked paid. Failed marks a payment that can never
// settle, e.g. its booking is gone or was paid by another transaction; failed
// payments are left for manual refund and skipped by reconciliation.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookingID     string             `bson:"bookingId" json:"bookingId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price" json:"price"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Settled       bool               `bson:"settled" json:"settled"`
	Failed        bool               `bson:"failed" json:"failed"`
	FailureReason string             `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// PaymentIntentRequest is the body of a create-payment-intent call.
type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

// PaymentIntentResponse carries the client-side secret for the gateway SDK.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
