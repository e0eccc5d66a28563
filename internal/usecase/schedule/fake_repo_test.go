package schedule_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory Repository with the same observable semantics as
// the gorm implementation, including the unique (clinic, date, time)
// constraint on bookings. CreateBooking holds the mutex across check and
// insert, mirroring the database's atomic constraint check.
type fakeRepo struct {
	mu sync.Mutex

	clinics      map[uint]*models.Clinic
	appointments []models.Appointment
	archived     []models.ArchivedAppointment
	bookings     map[uint]*models.BookedAppointment

	nextBookingID uint
	nextApptID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinics: map[uint]*models.Clinic{
			1: {ID: 1, Name: "Test Clinic", Slug: "test-clinic", Timezone: "UTC"},
		},
		bookings: make(map[uint]*models.BookedAppointment),
	}
}

func (r *fakeRepo) addAppointment(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextApptID++
	ap.ID = r.nextApptID
	if ap.ClinicID == 0 {
		ap.ClinicID = 1
	}
	r.appointments = append(r.appointments, ap)
}

func (r *fakeRepo) GetClinicByID(_ context.Context, id uint) (*models.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clinic, ok := r.clinics[id]
	if !ok {
		return nil, errNotFound
	}
	copy := *clinic
	return &copy, nil
}

func (r *fakeRepo) ListClinics(_ context.Context) ([]models.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Clinic
	for _, c := range r.clinics {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListAppointmentsOverlapping(
	_ context.Context,
	clinicID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClinicID == clinicID && ap.StartTime.Before(to) && ap.EndTime.After(from) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListBookedSlots(
	_ context.Context,
	clinicID uint,
	fromDate string,
	toDate string,
) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booked := make(map[string][]string)
	for _, b := range r.bookings {
		if b.ClinicID != clinicID {
			continue
		}
		if b.AppointmentDate < fromDate || b.AppointmentDate > toDate {
			continue
		}
		booked[b.AppointmentDate] = append(booked[b.AppointmentDate], b.AppointmentTime)
	}
	return booked, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, booking *models.BookedAppointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ClinicID == booking.ClinicID &&
			b.AppointmentDate == booking.AppointmentDate &&
			b.AppointmentTime == booking.AppointmentTime {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}

	r.nextBookingID++
	booking.ID = r.nextBookingID
	booking.CreatedAt = time.Now()

	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeRepo) GetBookingForUser(
	_ context.Context,
	bookingID uint,
	userID uint,
) (*models.BookedAppointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok || b.UserID == nil || *b.UserID != userID {
		return nil, errNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, booking *models.BookedAppointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, booking.ID)
	return nil
}

func (r *fakeRepo) ListBookingsForUser(
	_ context.Context,
	userID uint,
) ([]models.BookedAppointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.BookedAppointment
	for _, b := range r.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out, nil
}

func (r *fakeRepo) ArchiveAppointmentsBefore(
	_ context.Context,
	clinicID uint,
	cutoff time.Time,
	archivedAt time.Time,
) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []models.Appointment
	count := 0
	for _, ap := range r.appointments {
		if ap.ClinicID == clinicID && ap.EndTime.Before(cutoff) {
			count++
			r.archived = append(r.archived, models.ArchivedAppointment{
				ClinicID:   ap.ClinicID,
				Title:      ap.Title,
				StartTime:  ap.StartTime,
				EndTime:    ap.EndTime,
				Type:       ap.Type,
				ArchivedAt: archivedAt,
			})
			continue
		}
		kept = append(kept, ap)
	}
	r.appointments = kept
	return count, nil
}
