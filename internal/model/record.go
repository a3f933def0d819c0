package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record types.
const (
	RecordPrescription = "prescription"
	RecordNote         = "note"
)

// Record is an entry in a patient's medical history.
type Record struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	PatientID  string    `json:"patientId" gorm:"type:char(36);not null;index"`
	DoctorID   *string   `json:"doctorId" gorm:"type:char(36);index"`
	Type       string    `json:"type" gorm:"size:32;not null;default:'prescription'"`
	Medication *string   `json:"medication" gorm:"size:255"`
	Notes      *string   `json:"notes" gorm:"type:text"`
	Date       time.Time `json:"date" gorm:"not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Doctor  *Doctor  `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
}

// BeforeCreate fills UUID, type and date defaults before creating the record.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Type == "" {
		r.Type = RecordPrescription
	}
	if r.Date.IsZero() {
		r.Date = tx.NowFunc()
	}
	return nil
}
