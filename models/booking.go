package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking reserves one slot of one treatment on one date for one patient.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate"` // e.g. "Jan 2, 2024"
	PatientName     string             `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Treatment       string             `bson:"treatment" json:"treatment"` // AppointmentService.ServiceTitle
	Slot            string             `bson:"slot" json:"slot"`
	Price           float64            `bson:"price,omitempty" json:"price,omitempty"`
	Paid            bool               `bson:"paid" json:"paid"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// ConflictKey identifies duplicate bookings.
type ConflictKey struct {
	AppointmentDate string
	Email           string
	Treatment       string
}

// Key returns the booking's conflict key.
func (b Booking) Key() ConflictKey {
	return ConflictKey{AppointmentDate: b.AppointmentDate, Email: b.Email, Treatment: b.Treatment}
}

// BookingResult is the acknowledgement returned for an insert attempt.
type BookingResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}
