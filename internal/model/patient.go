package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for a patient.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient is a person receiving care.
type Patient struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Age       int       `json:"age" gorm:"not null"`
	Gender    string    `json:"gender" gorm:"size:16;not null"`
	Diagnosis *string   `json:"diagnosis" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Appointments []Appointment `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Records      []Record      `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
