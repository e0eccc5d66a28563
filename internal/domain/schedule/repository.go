package schedule

import (
	"context"
	"time"

	"github.com/brightops/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	ListClinics(
		ctx context.Context,
	) ([]models.Clinic, error)

	// -------- Calendar appointments (availability input) --------
	ListAppointmentsOverlapping(
		ctx context.Context,
		clinicID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Bookings --------
	ListBookedSlots(
		ctx context.Context,
		clinicID uint,
		fromDate string,
		toDate string,
	) (map[string][]string, error)

	CreateBooking(
		ctx context.Context,
		booking *models.BookedAppointment,
	) error

	GetBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.BookedAppointment, error)

	DeleteBooking(
		ctx context.Context,
		booking *models.BookedAppointment,
	) error

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.BookedAppointment, error)

	// -------- Retention --------
	ArchiveAppointmentsBefore(
		ctx context.Context,
		clinicID uint,
		cutoff time.Time,
		archivedAt time.Time,
	) (int, error)
}
