package booking

import (
	"fmt"

	"visionhealth/models"
)

// Decision is the outcome of a conflict check.
type Decision struct {
	Accepted bool
	Reason   string
}

// ConflictMessage is the rejection text shown to a patient who already booked
// the same treatment on date.
func ConflictMessage(date string) string {
	return fmt.Sprintf("You already have a booking on %s", date)
}

// TryBook rejects req when any of existing has the same conflict key. The slot
// is not part of the key.
func TryBook(req models.Booking, existing []models.Booking) Decision {
	key := req.Key()
	for _, b := range existing {
		if b.Key() == key {
			return Decision{Accepted: false, Reason: ConflictMessage(req.AppointmentDate)}
		}
	}
	return Decision{Accepted: true}
}
