package schedule

import (
	"time"

	"github.com/brightops/clinic-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ===============================
// Appointment Type
// ===============================

type AppointmentType string

const (
	TypeCheckup   AppointmentType = "checkup"
	TypeFollowup  AppointmentType = "followup"
	TypeEmergency AppointmentType = "emergency"
)

func ParseAppointmentType(s string) (AppointmentType, error) {
	switch AppointmentType(s) {
	case TypeCheckup, TypeFollowup, TypeEmergency:
		return AppointmentType(s), nil
	}
	return "", httperr.ErrBusiness("invalid_appointment_type")
}

// ===============================
// Business Hours
// ===============================

// BusinessHours is the bookable window of a working day. It is explicit
// configuration handed to the engine, never ambient package state, so it can
// vary per clinic and per test.
type BusinessHours struct {
	Start        string // "HH:MM", inclusive
	End          string // "HH:MM", exclusive
	SlotDuration time.Duration
}

func (bh BusinessHours) Validate() error {
	start, err := time.Parse(TimeLayout, bh.Start)
	if err != nil {
		return httperr.ErrBusiness("invalid_business_start")
	}
	end, err := time.Parse(TimeLayout, bh.End)
	if err != nil {
		return httperr.ErrBusiness("invalid_business_end")
	}
	if !start.Before(end) {
		return httperr.ErrBusiness("business_hours_empty")
	}
	if bh.SlotDuration <= 0 {
		return httperr.ErrBusiness("invalid_slot_duration")
	}
	return nil
}

// windowOn anchors the window to a concrete date in that date's location.
func (bh BusinessHours) windowOn(date time.Time) (time.Time, time.Time) {
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse(TimeLayout, hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			date.Location(),
		)
	}
	return parseHM(bh.Start), parseHM(bh.End)
}

// ===============================
// Availability output
// ===============================

// DateAvailability is one horizon entry: a date plus its open slot start
// times. Dates without open slots are never emitted.
type DateAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}
