package schedule

import (
	"context"
	"time"

	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/models"
	"github.com/brightops/clinic-scheduler/internal/timezone"
)

const maxHorizonDays = 90

type AvailableDates struct {
	repo    domain.Repository
	hours   domain.BusinessHours
	horizon int
}

func NewAvailableDates(
	repo domain.Repository,
	hours domain.BusinessHours,
	horizonDays int,
) *AvailableDates {
	return &AvailableDates{
		repo:    repo,
		hours:   hours,
		horizon: horizonDays,
	}
}

// Execute computes open slots for every date from today through
// today+days-1 in the clinic's timezone. Dates are ascending, slots within a
// date are ascending, and dates with no open slot are omitted.
//
// Appointments and booked slots are fetched once for the whole horizon and
// bucketed by date, so the cost is O(horizon + rows), not a query per day.
func (uc *AvailableDates) Execute(
	ctx context.Context,
	clinicID uint,
	days int,
) ([]domain.DateAvailability, error) {

	if days < 1 || days > maxHorizonDays {
		days = uc.horizon
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}

	loc := timezone.Location(clinic.Timezone)
	now := timezone.NowIn(clinic.Timezone)

	horizonStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	horizonEnd := horizonStart.AddDate(0, 0, days)

	appointments, err := uc.repo.ListAppointmentsOverlapping(
		ctx,
		clinicID,
		horizonStart,
		horizonEnd,
	)
	if err != nil {
		return nil, err
	}

	// An appointment blocks a date when its start date or end date equals
	// that date, so a row can land in up to two buckets.
	byDate := make(map[string][]models.Appointment)
	for _, ap := range appointments {
		startKey := ap.StartTime.In(loc).Format(domain.DateLayout)
		byDate[startKey] = append(byDate[startKey], ap)

		endKey := ap.EndTime.In(loc).Format(domain.DateLayout)
		if endKey != startKey {
			byDate[endKey] = append(byDate[endKey], ap)
		}
	}

	bookedByDate, err := uc.repo.ListBookedSlots(
		ctx,
		clinicID,
		horizonStart.Format(domain.DateLayout),
		horizonEnd.AddDate(0, 0, -1).Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DateAvailability, 0, days)

	for d := 0; d < days; d++ {
		date := horizonStart.AddDate(0, 0, d)
		key := date.Format(domain.DateLayout)

		slots := domain.AvailableSlots(date, uc.hours, byDate[key], bookedByDate[key])
		if len(slots) == 0 {
			continue
		}

		out = append(out, domain.DateAvailability{
			Date:           key,
			AvailableSlots: slots,
		})
	}

	return out, nil
}

// ForDate recomputes availability for a single date. The booking path calls
// this directly at commit time instead of replaying the list endpoint.
func (uc *AvailableDates) ForDate(
	ctx context.Context,
	clinic *models.Clinic,
	date time.Time,
) ([]string, error) {

	loc := timezone.Location(clinic.Timezone)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsOverlapping(
		ctx,
		clinic.ID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	key := dayStart.Format(domain.DateLayout)

	dayAppointments := appointments[:0:0]
	for _, ap := range appointments {
		if ap.StartTime.In(loc).Format(domain.DateLayout) == key ||
			ap.EndTime.In(loc).Format(domain.DateLayout) == key {
			dayAppointments = append(dayAppointments, ap)
		}
	}

	bookedByDate, err := uc.repo.ListBookedSlots(ctx, clinic.ID, key, key)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(dayStart, uc.hours, dayAppointments, bookedByDate[key]), nil
}
