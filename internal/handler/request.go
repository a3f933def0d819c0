package handler

import (
	"hospital/internal/model"
	"hospital/internal/service"
)

// Client-facing messages for rejected payloads.
const (
	msgInvalidRegistration = "Invalid registration payload"
	msgInvalidLogin        = "Invalid credentials"
	msgInvalidPatient      = "Invalid patient data"
	msgInvalidPatientPatch = "Invalid patient update"
	msgInvalidDoctor       = "Invalid doctor data"
	msgInvalidAppointment  = "Invalid appointment data"
	msgInvalidRecord       = "Invalid record data"
	msgInvalidUser         = "Invalid user data"
	msgInvalidUserPatch    = "Invalid user update"
)

const defaultUserName = "User"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
}

func (r RegisterRequest) toInput() service.RegisterInput {
	name := defaultUserName
	if r.Name != nil {
		name = *r.Name
	}
	return service.RegisterInput{Email: r.Email, Password: r.Password, Name: name}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// PatientRequest is the body of a patient registration.
type PatientRequest struct {
	Name      string  `json:"name" validate:"required,min=1"`
	Age       *int    `json:"age" validate:"required,min=0,max=120"`
	Gender    string  `json:"gender" validate:"required,oneof=male female other"`
	Diagnosis *string `json:"diagnosis"`
}

func (r PatientRequest) toInput() service.PatientInput {
	return service.PatientInput{
		Name:      r.Name,
		Age:       *r.Age,
		Gender:    r.Gender,
		Diagnosis: r.Diagnosis,
	}
}

// PatientUpdateRequest is the body of a partial patient update.
type PatientUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Age       *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Diagnosis *string `json:"diagnosis"`
}

func (r PatientUpdateRequest) toInput() service.PatientUpdate {
	return service.PatientUpdate{
		Name:      r.Name,
		Age:       r.Age,
		Gender:    r.Gender,
		Diagnosis: r.Diagnosis,
	}
}

// DoctorRequest is the body of a doctor registration.
type DoctorRequest struct {
	Name         string   `json:"name" validate:"required,min=1"`
	Specialty    string   `json:"specialty" validate:"required,min=1"`
	Availability []string `json:"availability" validate:"omitempty,dive,min=1"`
}

func (r DoctorRequest) toInput() service.DoctorInput {
	availability := r.Availability
	if availability == nil {
		availability = []string{}
	}
	return service.DoctorInput{
		Name:         r.Name,
		Specialty:    r.Specialty,
		Availability: availability,
	}
}

// AppointmentRequest is the body of a booking.
type AppointmentRequest struct {
	PatientID string  `json:"patientId" validate:"required"`
	DoctorID  *string `json:"doctorId"`
	Datetime  string  `json:"datetime" validate:"required,timestamp"`
	Reason    *string `json:"reason"`
}

func (r AppointmentRequest) toInput() (service.AppointmentInput, error) {
	when, err := ParseTimestamp(r.Datetime)
	if err != nil {
		return service.AppointmentInput{}, err
	}
	reason := model.DefaultAppointmentReason
	if r.Reason != nil && *r.Reason != "" {
		reason = *r.Reason
	}
	return service.AppointmentInput{
		PatientID: r.PatientID,
		DoctorID:  optionalID(r.DoctorID),
		Datetime:  when,
		Reason:    reason,
	}, nil
}

// optionalID treats an empty reference like an absent one.
func optionalID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// RecordRequest is the body of a medical record.
type RecordRequest struct {
	PatientID  string  `json:"patientId" validate:"required"`
	DoctorID   *string `json:"doctorId"`
	Type       *string `json:"type" validate:"omitempty,oneof=prescription note"`
	Medication *string `json:"medication"`
	Notes      *string `json:"notes"`
	Date       *string `json:"date" validate:"omitempty,timestamp"`
}

// toInput leaves Type and Date empty when omitted; the service fills them.
func (r RecordRequest) toInput() (service.RecordInput, error) {
	in := service.RecordInput{
		PatientID:  r.PatientID,
		DoctorID:   optionalID(r.DoctorID),
		Medication: r.Medication,
		Notes:      r.Notes,
	}
	if r.Type != nil {
		in.Type = *r.Type
	}
	if r.Date != nil {
		date, err := ParseTimestamp(*r.Date)
		if err != nil {
			return service.RecordInput{}, err
		}
		in.Date = date
	}
	return in, nil
}

// CreateUserRequest is the body of an admin-side user creation.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
}

func (r CreateUserRequest) toInput() service.CreateUserInput {
	role := model.RoleUser
	if r.Role != nil {
		role = *r.Role
	}
	return service.CreateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
	}
}

// UpdateUserRequest is the body of a partial user update.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
}

func (r UpdateUserRequest) toInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}
