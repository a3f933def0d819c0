package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital/internal/model"
)

// RecordFilter narrows a record listing. Zero values match everything.
type RecordFilter struct {
	PatientID string
}

// RecordRepository defines medical record persistence operations.
type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Record, error)
	List(ctx context.Context, filter RecordFilter) ([]model.Record, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Delete removes a record. It returns gorm.ErrRecordNotFound when nothing matched.
func (r *recordRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recordRepository) FindByID(ctx context.Context, id string) (*model.Record, error) {
	var record model.Record
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns matching records with patient and doctor, newest first.
func (r *recordRepository) List(ctx context.Context, filter RecordFilter) ([]model.Record, error) {
	q := r.db.WithContext(ctx).Preload("Patient").Preload("Doctor")
	if filter.PatientID != "" {
		q = q.Where("patient_id = ?", filter.PatientID)
	}

	var records []model.Record
	if err := q.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
