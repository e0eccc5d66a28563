package schedule

import (
	"context"
	"time"

	"github.com/brightops/clinic-scheduler/internal/audit"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/timezone"
)

type Archive struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewArchive(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *Archive {
	return &Archive{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute moves every appointment that ended more than daysOld days ago into
// the archive table and reports how many rows moved. The count is taken
// before deletion inside the move transaction, so a second run over the same
// data returns zero. Idempotent per row.
func (uc *Archive) Execute(
	ctx context.Context,
	clinicID uint,
	daysOld int,
) (int, error) {

	if daysOld < 1 {
		return 0, httperr.ErrBusiness("invalid_days_old")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return 0, httperr.ErrBusiness("clinic_not_found")
	}

	now := timezone.NowIn(clinic.Timezone)
	cutoff := now.Add(-time.Duration(daysOld) * 24 * time.Hour)

	count, err := uc.repo.ArchiveAppointmentsBefore(ctx, clinicID, cutoff, now)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		uc.audit.Dispatch(audit.Event{
			ClinicID: clinicID,
			Action:   "appointments_archived",
			Entity:   "appointment",
			Metadata: map[string]any{
				"days_old": daysOld,
				"count":    count,
			},
		})
	}

	return count, nil
}
