package availability

import "visionhealth/models"

// AvailableSlots narrows each service's slot list to the slots not yet taken by
// bookingsForDate for that service's title. Slot order is preserved and the
// inputs are not modified.
func AvailableSlots(services []models.AppointmentService, bookingsForDate []models.Booking) []models.AppointmentService {
	taken := make(map[string]map[string]struct{}, len(services))
	for _, b := range bookingsForDate {
		slots, ok := taken[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			taken[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	result := make([]models.AppointmentService, len(services))
	for i, svc := range services {
		booked := taken[svc.ServiceTitle]
		remaining := make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if _, isTaken := booked[slot]; !isTaken {
				remaining = append(remaining, slot)
			}
		}
		svc.Slots = remaining
		result[i] = svc
	}
	return result
}
