package schedule

import (
	"context"

	"github.com/brightops/clinic-scheduler/internal/audit"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/models"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute deletes a booking owned by the caller. Cancellation is
// unconditional, there is no cut-off window, and the slot is immediately open
// to availability queries again. A booking owned by someone else reads as
// not found.
func (uc *Cancel) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.BookedAppointment, error) {

	booking, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.DeleteBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: booking.ClinicID,
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booked_appointment",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"date": booking.AppointmentDate,
			"time": booking.AppointmentTime,
		},
	})

	return booking, nil
}
