package availability

import (
	"testing"

	"visionhealth/models"

	"github.com/stretchr/testify/assert"
)

func svc(title string, slots ...string) models.AppointmentService {
	return models.AppointmentService{ServiceTitle: title, Slots: slots}
}

func booked(treatment, slot string) models.Booking {
	return models.Booking{AppointmentDate: "Jan 1, 2024", Treatment: treatment, Slot: slot}
}

func TestAvailableSlots_RemovesBookedSlot(t *testing.T) {
	services := []models.AppointmentService{svc("Eye Exam", "9am", "10am", "11am")}
	bookings := []models.Booking{booked("Eye Exam", "10am")}

	got := AvailableSlots(services, bookings)

	assert.Equal(t, []models.AppointmentService{svc("Eye Exam", "9am", "11am")}, got)
}

func TestAvailableSlots_OnlyMatchingTreatmentCounts(t *testing.T) {
	services := []models.AppointmentService{
		svc("Eye Exam", "9am", "10am"),
		svc("Lens Fitting", "9am", "10am"),
	}
	bookings := []models.Booking{
		booked("Lens Fitting", "9am"),
		booked("Cataract Surgery", "10am"),
	}

	got := AvailableSlots(services, bookings)

	assert.Equal(t, []string{"9am", "10am"}, got[0].Slots)
	assert.Equal(t, []string{"10am"}, got[1].Slots)
}

func TestAvailableSlots_PreservesOrderAndOtherFields(t *testing.T) {
	in := svc("Eye Exam", "5pm", "8am", "noon", "7am")
	in.Price = 120
	bookings := []models.Booking{booked("Eye Exam", "noon")}

	got := AvailableSlots([]models.AppointmentService{in}, bookings)

	assert.Equal(t, []string{"5pm", "8am", "7am"}, got[0].Slots)
	assert.Equal(t, 120.0, got[0].Price)
	assert.Equal(t, "Eye Exam", got[0].ServiceTitle)
}

func TestAvailableSlots_AllBooked(t *testing.T) {
	services := []models.AppointmentService{svc("Eye Exam", "9am", "10am")}
	bookings := []models.Booking{booked("Eye Exam", "9am"), booked("Eye Exam", "10am")}

	got := AvailableSlots(services, bookings)

	assert.NotNil(t, got[0].Slots)
	assert.Empty(t, got[0].Slots)
}

func TestAvailableSlots_EmptyInputs(t *testing.T) {
	assert.Empty(t, AvailableSlots(nil, []models.Booking{booked("Eye Exam", "9am")}))

	got := AvailableSlots([]models.AppointmentService{svc("Eye Exam", "9am")}, nil)
	assert.Equal(t, []string{"9am"}, got[0].Slots)

	got = AvailableSlots([]models.AppointmentService{{ServiceTitle: "Empty"}}, nil)
	assert.Empty(t, got[0].Slots)
}

func TestAvailableSlots_PureAndIdempotent(t *testing.T) {
	services := []models.AppointmentService{svc("Eye Exam", "9am", "10am", "11am")}
	bookings := []models.Booking{booked("Eye Exam", "10am")}

	first := AvailableSlots(services, bookings)
	second := AvailableSlots(services, bookings)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"9am", "10am", "11am"}, services[0].Slots, "input must not be modified")
	assert.Len(t, bookings, 1)
}

func TestAvailableSlots_NeverReturnsTakenSlot(t *testing.T) {
	slots := []string{"a", "b", "c", "d", "e", "f"}
	services := []models.AppointmentService{svc("X", slots...), svc("Y", slots...)}

	// Every subset of slots booked for X, with Y left alone.
	for mask := 0; mask < 1<<len(slots); mask++ {
		var bookings []models.Booking
		taken := map[string]bool{}
		for i, s := range slots {
			if mask&(1<<i) != 0 {
				bookings = append(bookings, booked("X", s))
				taken[s] = true
			}
		}

		got := AvailableSlots(services, bookings)

		var want []string
		for _, s := range slots {
			if !taken[s] {
				want = append(want, s)
			}
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, got[0].Slots, "mask %b", mask)
		assert.Equal(t, slots, got[1].Slots, "mask %b", mask)
	}
}
