package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital/internal/model"
)

// PatientRepository defines patient persistence operations.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Patient, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Patient, error)
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository.
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

// Create creates a new patient.
func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// Update saves every column of an existing patient.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// Delete removes a patient together with its appointments and records in a
// single transaction, so the cascade holds even where the engine does not
// enforce foreign keys.
func (r *patientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&model.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&model.Record{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Patient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindByID finds a patient by ID.
func (r *patientRepository) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// Exists reports whether a patient with id is stored.
func (r *patientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Patient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists all patients.
func (r *patientRepository) List(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}
