package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/httperr"
	"github.com/brightops/clinic-scheduler/internal/httpresp"
	"github.com/brightops/clinic-scheduler/internal/middleware"
	ucSchedule "github.com/brightops/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	availableDates *ucSchedule.AvailableDates
	book           *ucSchedule.Book
	cancel         *ucSchedule.Cancel
	repo           domain.Repository
}

func NewScheduleHandler(
	availableDates *ucSchedule.AvailableDates,
	book *ucSchedule.Book,
	cancel *ucSchedule.Cancel,
	repo domain.Repository,
) *ScheduleHandler {
	return &ScheduleHandler{
		availableDates: availableDates,
		book:           book,
		cancel:         cancel,
		repo:           repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PatientName     string `json:"patient_name" binding:"required"`
	PatientEmail    string `json:"patient_email" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	AppointmentType string `json:"appointment_type" binding:"required"`
}

// ======================================================
// AVAILABLE DATES
// ======================================================

func (h *ScheduleHandler) AvailableDates(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	days := 0
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}

	dates, err := h.availableDates.Execute(c.Request.Context(), clinicID, days)
	if err != nil {
		if httperr.IsBusiness(err, "clinic_not_found") {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "availability_failed", "Failed to compute availability.")
		return
	}

	httpresp.OK(c, dates)
}

// ======================================================
// BOOK
// ======================================================

func (h *ScheduleHandler) Book(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	booking, err := h.book.Execute(c.Request.Context(), ucSchedule.BookInput{
		ClinicID:     clinicID,
		UserID:       userID,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		Date:         req.AppointmentDate,
		Time:         req.AppointmentTime,
		Type:         req.AppointmentType,
	})

	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, booking)
}

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "This appointment slot is no longer available.")
	case httperr.IsBusiness(err, "clinic_not_found"):
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
	case httperr.IsBusiness(err, "invalid_patient_name"):
		httperr.BadRequest(c, "invalid_patient_name", "Patient name must be 1-100 characters.")
	case httperr.IsBusiness(err, "invalid_patient_email"):
		httperr.BadRequest(c, "invalid_patient_email", "Patient email is not a valid address.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Date must use the YYYY-MM-DD format.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Time must use the HH:MM format.")
	case httperr.IsBusiness(err, "invalid_appointment_type"):
		httperr.BadRequest(c, "invalid_appointment_type", "Unknown appointment type.")
	case httperr.IsBusiness(err, "date_in_past"):
		httperr.BadRequest(c, "date_in_past", "Appointment date cannot be in the past.")
	default:
		httperr.Internal(c, "booking_failed", "Failed to book appointment.")
	}
}

// ======================================================
// CANCEL
// ======================================================

func (h *ScheduleHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), userID, uint(id)); err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "cancel_failed", "Failed to cancel booking.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment cancelled successfully"})
}

// ======================================================
// MY BOOKINGS
// ======================================================

func (h *ScheduleHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.repo.ListBookingsForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, bookings)
}
