package models

import "time"

// BookedAppointment is a patient reservation for one slot.
//
// The composite unique index is the slot-exclusivity guarantee: a concurrent
// insert for the same (clinic, date, time) fails with a unique violation and
// is reported as a booking conflict. Exclusivity is scoped per clinic.
//
// UserID is nullable so the reservation survives account deletion.
type BookedAppointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint `gorm:"uniqueIndex:idx_booked_slot" json:"clinic_id"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	PatientName  string `gorm:"size:100;not null" json:"patient_name"`
	PatientEmail string `gorm:"size:100;not null" json:"patient_email"`

	AppointmentDate string `gorm:"size:10;uniqueIndex:idx_booked_slot" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;uniqueIndex:idx_booked_slot" json:"appointment_time"`
	AppointmentType string `gorm:"size:20" json:"appointment_type"`

	CreatedAt time.Time `json:"created_at"`
}
