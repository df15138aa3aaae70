// Package memrepo provides in-memory repositories with the same uniqueness rules
// as the Mongo implementations. Used by tests.
package memrepo

import (
	"context"
	"sync"

	bookingRepo "visionhealth/database/repository/booking"
	catalogRepo "visionhealth/database/repository/catalog"
	doctorRepo "visionhealth/database/repository/doctor"
	paymentRepo "visionhealth/database/repository/payment"
	userRepo "visionhealth/database/repository/user"
	"visionhealth/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookings is an in-memory BookingRepository. Setting Err makes every call fail;
// MarkPaidErr only affects MarkPaid.
type Bookings struct {
	mu          sync.Mutex
	items       []models.Booking
	Err         error
	MarkPaidErr error
	// SkipLookup hides existing rows from FindByKey, simulating a concurrent
	// writer that inserted between the check and the insert.
	SkipLookup bool
	// AfterFindByDate runs once FindByDate has taken its snapshot, before it
	// returns, so tests can interleave writes.
	AfterFindByDate func()
}

var _ bookingRepo.BookingRepository = (*Bookings)(nil)

func NewBookings(seed ...models.Booking) *Bookings {
	b := &Bookings{}
	for _, s := range seed {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		b.items = append(b.items, s)
	}
	return b
}

func (r *Bookings) All() []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Booking(nil), r.items...)
}

func (r *Bookings) filter(match func(models.Booking) bool) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range r.items {
		if match(b) {
			out = append(out, b)
		}
	}
	return out
}

func (r *Bookings) FindByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	snapshot := r.filter(func(b models.Booking) bool { return b.AppointmentDate == date })
	hook := r.AfterFindByDate
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return snapshot, nil
}

func (r *Bookings) FindByEmail(_ context.Context, email string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.filter(func(b models.Booking) bool { return b.Email == email }), nil
}

func (r *Bookings) FindByKey(_ context.Context, key models.ConflictKey) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.SkipLookup {
		return []models.Booking{}, nil
	}
	return r.filter(func(b models.Booking) bool { return b.Key() == key }), nil
}

func (r *Bookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, b := range r.items {
		if b.ID.Hex() == id {
			found := b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *Bookings) Create(_ context.Context, booking *models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	for _, b := range r.items {
		if b.Key() == booking.Key() {
			return "", bookingRepo.ErrDuplicateBooking
		}
	}
	booking.ID = primitive.NewObjectID()
	r.items = append(r.items, *booking)
	return booking.ID.Hex(), nil
}

func (r *Bookings) MarkPaid(_ context.Context, id, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.MarkPaidErr != nil {
		return r.MarkPaidErr
	}
	for i := range r.items {
		if r.items[i].ID.Hex() != id {
			continue
		}
		if r.items[i].Paid && r.items[i].TransactionID != transactionID {
			return bookingRepo.ErrAlreadyPaid
		}
		r.items[i].Paid = true
		r.items[i].TransactionID = transactionID
		return nil
	}
	return bookingRepo.ErrBookingNotFound
}

// Catalog is an in-memory CatalogRepository.
type Catalog struct {
	mu    sync.Mutex
	items []models.AppointmentService
	Err   error
	Calls int
}

var _ catalogRepo.CatalogRepository = (*Catalog)(nil)

func NewCatalog(seed ...models.AppointmentService) *Catalog {
	c := &Catalog{}
	for _, s := range seed {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		c.items = append(c.items, s)
	}
	return c
}

func (r *Catalog) GetAll(context.Context) ([]models.AppointmentService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.AppointmentService, len(r.items))
	for i, s := range r.items {
		s.Slots = append([]string(nil), s.Slots...)
		out[i] = s
	}
	return out, nil
}

func (r *Catalog) GetSpecialties(context.Context) ([]models.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Specialty, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, models.Specialty{ID: s.ID, ServiceTitle: s.ServiceTitle})
	}
	return out, nil
}

func (r *Catalog) Create(_ context.Context, service *models.AppointmentService) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	for _, s := range r.items {
		if s.ServiceTitle == service.ServiceTitle {
			return "", catalogRepo.ErrDuplicateService
		}
	}
	service.ID = primitive.NewObjectID()
	r.items = append(r.items, *service)
	return service.ID.Hex(), nil
}

func (r *Catalog) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i, s := range r.items {
		if s.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, catalogRepo.ErrServiceNotFound
}

// Users is an in-memory UserRepository.
type Users struct {
	mu    sync.Mutex
	items []models.User
	Err   error
}

var _ userRepo.UserRepository = (*Users)(nil)

func NewUsers(seed ...models.User) *Users {
	u := &Users{}
	for _, s := range seed {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		u.items = append(u.items, s)
	}
	return u
}

func (r *Users) GetAll(context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append(make([]models.User, 0, len(r.items)), r.items...), nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.items {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Users) Create(_ context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	for _, u := range r.items {
		if u.Email == user.Email {
			return "", userRepo.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	r.items = append(r.items, *user)
	return user.ID.Hex(), nil
}

func (r *Users) SetRole(_ context.Context, id, role string) (*models.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.items {
		if r.items[i].ID.Hex() == id {
			modified := int64(0)
			if r.items[i].Role != role {
				r.items[i].Role = role
				modified = 1
			}
			return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

// Doctors is an in-memory DoctorRepository.
type Doctors struct {
	mu    sync.Mutex
	items []models.Doctor
}

var _ doctorRepo.DoctorRepository = (*Doctors)(nil)

func NewDoctors() *Doctors { return &Doctors{} }

func (r *Doctors) GetAll(context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]models.Doctor, 0, len(r.items)), r.items...), nil
}

func (r *Doctors) Create(_ context.Context, d *models.Doctor) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = primitive.NewObjectID()
	r.items = append(r.items, *d)
	return d.ID.Hex(), nil
}

func (r *Doctors) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.items {
		if d.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, doctorRepo.ErrDoctorNotFound
}

// Payments is an in-memory PaymentRepository.
type Payments struct {
	mu    sync.Mutex
	items []models.Payment
	Err   error
}

var _ paymentRepo.PaymentRepository = (*Payments)(nil)

func NewPayments() *Payments { return &Payments{} }

func (r *Payments) All() []models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Payment(nil), r.items...)
}

func (r *Payments) Create(_ context.Context, p *models.Payment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	for _, existing := range r.items {
		if existing.TransactionID == p.TransactionID {
			return "", paymentRepo.ErrDuplicatePayment
		}
	}
	p.ID = primitive.NewObjectID()
	r.items = append(r.items, *p)
	return p.ID.Hex(), nil
}

func (r *Payments) MarkSettled(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Settled = true
		}
	}
	return nil
}

func (r *Payments) MarkFailed(_ context.Context, id primitive.ObjectID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Failed = true
			r.items[i].FailureReason = reason
		}
	}
	return nil
}

func (r *Payments) FindUnsettled(_ context.Context, limit int64) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Payment, 0)
	for _, p := range r.items {
		if !p.Settled && !p.Failed && int64(len(out)) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}
