package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital/internal/model"
)

// DoctorRepository defines doctor persistence operations.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Exists(ctx context.Context, id string) (bool, error)
	FindByName(ctx context.Context, name string) (*model.Doctor, error)
	List(ctx context.Context) ([]model.Doctor, error)
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository.
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Doctor{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorRepository) FindByName(ctx context.Context, name string) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	var doctors []model.Doctor
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}
