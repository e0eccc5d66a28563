package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brightops/clinic-scheduler/internal/audit"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/lock"
	"github.com/brightops/clinic-scheduler/internal/models"
	"github.com/brightops/clinic-scheduler/internal/timezone"
	"github.com/brightops/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	ClinicID uint
	UserID   uint

	PatientName  string
	PatientEmail string

	Date string // YYYY-MM-DD
	Time string // HH:MM
	Type string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo         domain.Repository
	availability *AvailableDates
	locker       lock.Locker
	audit        *audit.Dispatcher
}

func NewBook(
	repo domain.Repository,
	availability *AvailableDates,
	locker lock.Locker,
	auditDispatcher *audit.Dispatcher,
) *Book {
	return &Book{
		repo:         repo,
		availability: availability,
		locker:       locker,
		audit:        auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates a booking request fail-fast, re-checks availability for
// the requested date, and commits the reservation. The re-check plus insert
// runs under a per-slot lock when Redis is wired; either way the unique index
// on (clinic, date, time) makes the insert itself the deciding step, so two
// concurrent requests for one slot can never both succeed.
func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.BookedAppointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}

	// 1. field-level validation
	name := strings.TrimSpace(in.PatientName)
	if name == "" || len(name) > 100 {
		return nil, httperr.ErrBusiness("invalid_patient_name")
	}

	email := strings.ToLower(strings.TrimSpace(in.PatientEmail))
	if !validators.IsValidEmail(email) {
		return nil, httperr.ErrBusiness("invalid_patient_email")
	}

	loc := timezone.Location(clinic.Timezone)

	date, err := time.ParseInLocation(domain.DateLayout, in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	slotTime, err := time.Parse(domain.TimeLayout, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	timeStr := slotTime.Format(domain.TimeLayout)

	apType, err := domain.ParseAppointmentType(in.Type)
	if err != nil {
		return nil, err
	}

	// 2. no booking in the past
	now := timezone.NowIn(clinic.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date.Before(today) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// 3 + 4. re-check availability and insert, as one guarded unit
	userID := in.UserID
	booking := &models.BookedAppointment{
		ClinicID:        in.ClinicID,
		UserID:          &userID,
		PatientName:     name,
		PatientEmail:    email,
		AppointmentDate: date.Format(domain.DateLayout),
		AppointmentTime: timeStr,
		AppointmentType: string(apType),
	}

	commit := func(ctx context.Context) error {
		available, err := uc.availability.ForDate(ctx, clinic, date)
		if err != nil {
			return err
		}
		if !slices.Contains(available, timeStr) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return uc.repo.CreateBooking(ctx, booking)
	}

	if uc.locker != nil {
		slotKey := fmt.Sprintf("%d:%s:%s", in.ClinicID, booking.AppointmentDate, timeStr)
		err = uc.locker.WithSlotLock(ctx, slotKey, commit)
		if errors.Is(err, lock.ErrNotAcquired) {
			err = httperr.ErrBusiness("slot_unavailable")
		}
	} else {
		err = commit(ctx)
	}

	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				ClinicID: in.ClinicID,
				UserID:   &userID,
				Action:   "booking_conflict",
				Entity:   "booked_appointment",
				Metadata: map[string]any{
					"date": booking.AppointmentDate,
					"time": timeStr,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &userID,
		Action:   "booking_created",
		Entity:   "booked_appointment",
		EntityID: &booking.ID,
	})

	return booking, nil
}
