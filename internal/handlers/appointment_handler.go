package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightops/clinic-scheduler/internal/audit"
	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/httpresp"
	"github.com/brightops/clinic-scheduler/internal/middleware"
	"github.com/brightops/clinic-scheduler/internal/models"
	"github.com/brightops/clinic-scheduler/internal/timezone"
	ucSchedule "github.com/brightops/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler manages the clinical calendar maintained by staff. The
// booking flow only reads these rows; all writes go through here.
type AppointmentHandler struct {
	db                 *gorm.DB
	audit              *audit.Logger
	archive            *ucSchedule.Archive
	defaultArchiveDays int
}

func NewAppointmentHandler(
	db *gorm.DB,
	archive *ucSchedule.Archive,
	defaultArchiveDays int,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:                 db,
		audit:              audit.New(db),
		archive:            archive,
		defaultArchiveDays: defaultArchiveDays,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Title string    `json:"title" binding:"required,max=200"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
	Type  string    `json:"type" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Title *string    `json:"title"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Type  *string    `json:"type"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if _, err := domain.ParseAppointmentType(req.Type); err != nil {
		httperr.BadRequest(c, "invalid_appointment_type", "Unknown appointment type.")
		return
	}

	if !req.Start.Before(req.End) {
		httperr.BadRequest(c, "invalid_interval", "Start must be before end.")
		return
	}

	ap := models.Appointment{
		ClinicID:  clinicID,
		Title:     req.Title,
		StartTime: req.Start,
		EndTime:   req.End,
		Type:      req.Type,
	}

	if err := h.db.Create(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		return
	}

	h.audit.Log(clinicID, &userID, "appointment_created", "appointment", &ap.ID, nil)

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)

	loc := h.clinicLocation(clinicID)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.ParseInLocation(domain.DateLayout, fromStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		q = q.Where("start_time >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.ParseInLocation(domain.DateLayout, toStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		q = q.Where("start_time < ?", to.AddDate(0, 0, 1))
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	ap, ok := h.findForClinic(c, clinicID)
	if !ok {
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	ap, ok := h.findForClinic(c, clinicID)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > 200 {
			httperr.BadRequest(c, "invalid_title", "Title must be 1-200 characters.")
			return
		}
		ap.Title = *req.Title
	}
	if req.Start != nil {
		ap.StartTime = *req.Start
	}
	if req.End != nil {
		ap.EndTime = *req.End
	}
	if req.Type != nil {
		if _, err := domain.ParseAppointmentType(*req.Type); err != nil {
			httperr.BadRequest(c, "invalid_appointment_type", "Unknown appointment type.")
			return
		}
		ap.Type = *req.Type
	}

	if !ap.StartTime.Before(ap.EndTime) {
		httperr.BadRequest(c, "invalid_interval", "Start must be before end.")
		return
	}

	if err := h.db.Save(ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		return
	}

	h.audit.Log(clinicID, &userID, "appointment_updated", "appointment", &ap.ID, nil)

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	ap, ok := h.findForClinic(c, clinicID)
	if !ok {
		return
	}

	if err := h.db.Delete(ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Failed to delete appointment.")
		return
	}

	h.audit.Log(clinicID, &userID, "appointment_deleted", "appointment", &ap.ID, nil)

	c.Status(http.StatusNoContent)
}

// ======================================================
// ARCHIVE
// ======================================================

func (h *AppointmentHandler) ListArchived(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var archived []models.ArchivedAppointment
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("archived_at DESC, id DESC").
		Find(&archived).Error; err != nil {
		httperr.Internal(c, "failed_to_list_archived", "Failed to list archived appointments.")
		return
	}

	httpresp.List(c, archived)
}

// Archive runs the retention pass for the caller's clinic.
func (h *AppointmentHandler) Archive(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	days := h.defaultArchiveDays
	if v := c.Query("days_old"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httperr.BadRequest(c, "invalid_days_old", "days_old must be a positive integer.")
			return
		}
		days = n
	}

	count, err := h.archive.Execute(c.Request.Context(), clinicID, days)
	if err != nil {
		httperr.Internal(c, "archive_failed", "Failed to archive appointments.")
		return
	}

	httpresp.OK(c, gin.H{"archived_count": count})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) findForClinic(c *gin.Context, clinicID uint) (*models.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return nil, false
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return nil, false
	}

	return &ap, true
}

func (h *AppointmentHandler) clinicLocation(clinicID uint) *time.Location {
	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		return time.UTC
	}
	return timezone.Location(clinic.Timezone)
}
