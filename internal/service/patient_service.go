package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	apperrors "hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

// PatientInput is a validated patient registration.
type PatientInput struct {
	Name      string
	Age       int
	Gender    string
	Diagnosis *string
}

// PatientUpdate carries the fields to change. Nil fields are left alone.
type PatientUpdate struct {
	Name      *string
	Age       *int
	Gender    *string
	Diagnosis *string
}

// PatientService manages patients.
type PatientService interface {
	List(ctx context.Context) ([]model.Patient, error)
	Get(ctx context.Context, id string) (*model.Patient, error)
	Create(ctx context.Context, in PatientInput) (*model.Patient, error)
	Update(ctx context.Context, id string, in PatientUpdate) (*model.Patient, error)
	Delete(ctx context.Context, id string) error
}

type patientService struct {
	repo repository.PatientRepository
}

// NewPatientService creates a new patient service.
func NewPatientService(repo repository.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

func (s *patientService) List(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list patients")
	}
	return patients, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*model.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrPatientNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find patient")
	}
	return patient, nil
}

func (s *patientService) Create(ctx context.Context, in PatientInput) (*model.Patient, error) {
	patient := &model.Patient{
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Diagnosis: in.Diagnosis,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, errors.Wrap(err, "create patient")
	}
	return patient, nil
}

func (s *patientService) Update(ctx context.Context, id string, in PatientUpdate) (*model.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		patient.Name = *in.Name
	}
	if in.Age != nil {
		patient.Age = *in.Age
	}
	if in.Gender != nil {
		patient.Gender = *in.Gender
	}
	if in.Diagnosis != nil {
		patient.Diagnosis = in.Diagnosis
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, errors.Wrap(err, "update patient")
	}
	return patient, nil
}

// Delete removes the patient with its appointments and records.
func (s *patientService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrPatientNotFound
	}
	if err != nil {
		return errors.Wrap(err, "delete patient")
	}
	return nil
}
