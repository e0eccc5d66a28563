package models

import "time"

// ArchivedAppointment is a write-once copy of an Appointment moved out of the
// live table by the retention job. No update path exists.
type ArchivedAppointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint `gorm:"index" json:"clinic_id"`

	Title     string    `gorm:"size:200;not null" json:"title"`
	StartTime time.Time `json:"start"`
	EndTime   time.Time `json:"end"`
	Type      string    `gorm:"size:20" json:"type"`

	ArchivedAt time.Time `json:"archived_at"`
}
