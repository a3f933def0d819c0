package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	apperrors "hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

// RecordInput is a validated medical record. Empty Type and zero Date get
// their defaults.
type RecordInput struct {
	PatientID  string
	DoctorID   *string
	Type       string
	Medication *string
	Notes      *string
	Date       time.Time
}

// RecordService manages medical records.
type RecordService interface {
	List(ctx context.Context, filter repository.RecordFilter) ([]model.Record, error)
	Get(ctx context.Context, id string) (*model.Record, error)
	Create(ctx context.Context, in RecordInput) (*model.Record, error)
	Delete(ctx context.Context, id string) error
}

type recordService struct {
	repo     repository.RecordRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	now      func() time.Time
}

// NewRecordService creates a new record service.
func NewRecordService(
	repo repository.RecordRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
) RecordService {
	return &recordService{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		now:      time.Now,
	}
}

func (s *recordService) List(ctx context.Context, filter repository.RecordFilter) ([]model.Record, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list records")
	}
	return records, nil
}

func (s *recordService) Get(ctx context.Context, id string) (*model.Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find record")
	}
	return record, nil
}

func (s *recordService) Create(ctx context.Context, in RecordInput) (*model.Record, error) {
	if err := checkReferences(ctx, s.patients, s.doctors, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	record := &model.Record{
		PatientID:  in.PatientID,
		DoctorID:   in.DoctorID,
		Type:       in.Type,
		Medication: in.Medication,
		Notes:      in.Notes,
		Date:       in.Date,
	}
	if record.Type == "" {
		record.Type = model.RecordPrescription
	}
	if record.Date.IsZero() {
		record.Date = s.now()
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "create record")
	}
	return record, nil
}

func (s *recordService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrRecordNotFound
	}
	if err != nil {
		return errors.Wrap(err, "delete record")
	}
	return nil
}
