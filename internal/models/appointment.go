package models

import "time"

// Appointment is a clinical calendar event maintained by staff.
// Its interval blocks overlapping booking slots.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `gorm:"index" json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Title string `gorm:"size:200;not null" json:"title"`

	StartTime time.Time `gorm:"index" json:"start"`
	EndTime   time.Time `gorm:"index" json:"end"`

	Type string `gorm:"size:20" json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
