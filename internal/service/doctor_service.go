package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"hospital/internal/cache"
	"hospital/internal/model"
	"hospital/internal/repository"
)

const (
	doctorsCacheKey = "doctors:all"
	doctorsCacheTTL = 5 * time.Minute
)

// DoctorInput is a validated doctor registration.
type DoctorInput struct {
	Name         string
	Specialty    string
	Availability []string
}

// DoctorService manages doctors. The list is served from cache when
// available.
type DoctorService interface {
	List(ctx context.Context) ([]model.Doctor, error)
	Create(ctx context.Context, in DoctorInput) (*model.Doctor, error)
}

type doctorService struct {
	repo  repository.DoctorRepository
	cache *cache.Client
}

// NewDoctorService creates a new doctor service.
func NewDoctorService(repo repository.DoctorRepository, cache *cache.Client) DoctorService {
	return &doctorService{repo: repo, cache: cache}
}

func (s *doctorService) List(ctx context.Context) ([]model.Doctor, error) {
	var cached []model.Doctor
	if s.cache.GetJSON(ctx, doctorsCacheKey, &cached) {
		return cached, nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list doctors")
	}

	_ = s.cache.SetJSON(ctx, doctorsCacheKey, doctors, doctorsCacheTTL)
	return doctors, nil
}

func (s *doctorService) Create(ctx context.Context, in DoctorInput) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Name:         in.Name,
		Specialty:    in.Specialty,
		Availability: in.Availability,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, errors.Wrap(err, "create doctor")
	}

	_ = s.cache.Delete(ctx, doctorsCacheKey)
	return doctor, nil
}
