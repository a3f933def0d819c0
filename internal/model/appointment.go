package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAppointmentReason is used when a booking gives no reason.
const DefaultAppointmentReason = "General checkup"

// Appointment books a patient, optionally with a doctor, at a point in time.
type Appointment struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	PatientID string    `json:"patientId" gorm:"type:char(36);not null;index"`
	DoctorID  *string   `json:"doctorId" gorm:"type:char(36);index"`
	Datetime  time.Time `json:"datetime" gorm:"not null;index"`
	Reason    string    `json:"reason" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Doctor  *Doctor  `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
}

// BeforeCreate sets UUID and the default reason before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Reason == "" {
		a.Reason = DefaultAppointmentReason
	}
	return nil
}
