package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor is a practitioner patients can be booked with.
type Doctor struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;index"`
	Specialty    string    `json:"specialty" gorm:"size:255;not null"`
	Availability []string  `json:"availability" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Appointments []Appointment `json:"-" gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL"`
	Records      []Record      `json:"-" gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate sets UUID and an empty availability before creating the record.
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Availability == nil {
		d.Availability = []string{}
	}
	return nil
}

// AfterFind keeps availability a list for rows stored with NULL.
func (d *Doctor) AfterFind(tx *gorm.DB) error {
	if d.Availability == nil {
		d.Availability = []string{}
	}
	return nil
}
