package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"hospital/internal/model"
	"hospital/internal/repository"
)

// ErrUnknownReference is returned when a booking or record names a patient
// or doctor that does not exist.
var ErrUnknownReference = errors.New("referenced patient or doctor does not exist")

// AppointmentInput is a validated booking. An empty Reason gets the default.
type AppointmentInput struct {
	PatientID string
	DoctorID  *string
	Datetime  time.Time
	Reason    string
}

// AppointmentService manages appointments.
type AppointmentService interface {
	List(ctx context.Context) ([]model.Appointment, error)
	Create(ctx context.Context, in AppointmentInput) (*model.Appointment, error)
}

type appointmentService struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	repo repository.AppointmentRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
) AppointmentService {
	return &appointmentService{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
	}
}

func (s *appointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}
	return appointments, nil
}

func (s *appointmentService) Create(ctx context.Context, in AppointmentInput) (*model.Appointment, error) {
	if err := checkReferences(ctx, s.patients, s.doctors, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = model.DefaultAppointmentReason
	}
	appointment := &model.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Datetime:  in.Datetime,
		Reason:    reason,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, errors.Wrap(err, "create appointment")
	}
	return appointment, nil
}

// checkReferences verifies the patient and, when given, the doctor exist.
func checkReferences(
	ctx context.Context,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	patientID string,
	doctorID *string,
) error {
	ok, err := patients.Exists(ctx, patientID)
	if err != nil {
		return errors.Wrap(err, "check patient")
	}
	if !ok {
		return errors.WithMessagef(ErrUnknownReference, "patient %s", patientID)
	}

	if doctorID == nil {
		return nil
	}
	ok, err = doctors.Exists(ctx, *doctorID)
	if err != nil {
		return errors.Wrap(err, "check doctor")
	}
	if !ok {
		return errors.WithMessagef(ErrUnknownReference, "doctor %s", *doctorID)
	}
	return nil
}
