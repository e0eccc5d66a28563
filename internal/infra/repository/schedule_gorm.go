package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (r *ScheduleGormRepository) ListClinics(
	ctx context.Context,
) ([]models.Clinic, error) {

	var clinics []models.Clinic
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&clinics).Error; err != nil {
		return nil, err
	}
	return clinics, nil
}

// --------------------------------------------------
// Calendar appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsOverlapping(
	ctx context.Context,
	clinicID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND start_time < ? AND end_time > ?",
			clinicID, to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookedSlots(
	ctx context.Context,
	clinicID uint,
	fromDate string,
	toDate string,
) (map[string][]string, error) {

	var rows []models.BookedAppointment
	if err := r.db.WithContext(ctx).
		Select("appointment_date", "appointment_time").
		Where(
			"clinic_id = ? AND appointment_date BETWEEN ? AND ?",
			clinicID, fromDate, toDate,
		).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	booked := make(map[string][]string, len(rows))
	for _, row := range rows {
		booked[row.AppointmentDate] = append(booked[row.AppointmentDate], row.AppointmentTime)
	}

	return booked, nil
}

// CreateBooking inserts the reservation, translating a unique violation on
// idx_booked_slot into the slot-conflict outcome. The insert is the
// race-free compare-and-commit step of the booking transaction.
func (r *ScheduleGormRepository) CreateBooking(
	ctx context.Context,
	booking *models.BookedAppointment,
) error {

	err := r.db.WithContext(ctx).Create(booking).Error
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return err
	}

	return nil
}

func (r *ScheduleGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.BookedAppointment, error) {

	var booking models.BookedAppointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *ScheduleGormRepository) DeleteBooking(
	ctx context.Context,
	booking *models.BookedAppointment,
) error {
	return r.db.WithContext(ctx).Delete(booking).Error
}

func (r *ScheduleGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.BookedAppointment, error) {

	var bookings []models.BookedAppointment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Retention
// --------------------------------------------------

// ArchiveAppointmentsBefore moves rows whose interval ended before cutoff
// into the archive table. Copy, count, and delete happen in one transaction,
// and the count is captured from the selected rows before anything is
// deleted.
func (r *ScheduleGormRepository) ArchiveAppointmentsBefore(
	ctx context.Context,
	clinicID uint,
	cutoff time.Time,
	archivedAt time.Time,
) (int, error) {

	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var olds []models.Appointment
		if err := tx.
			Where("clinic_id = ? AND end_time < ?", clinicID, cutoff).
			Find(&olds).Error; err != nil {
			return err
		}

		count = len(olds)
		if count == 0 {
			return nil
		}

		archived := make([]models.ArchivedAppointment, 0, count)
		ids := make([]uint, 0, count)
		for _, ap := range olds {
			archived = append(archived, models.ArchivedAppointment{
				ClinicID:   ap.ClinicID,
				Title:      ap.Title,
				StartTime:  ap.StartTime,
				EndTime:    ap.EndTime,
				Type:       ap.Type,
				ArchivedAt: archivedAt,
			})
			ids = append(ids, ap.ID)
		}

		if err := tx.Create(&archived).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Appointment{}, ids).Error
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
