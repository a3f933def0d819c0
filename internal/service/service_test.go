package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital/internal/cache"
	"hospital/internal/db/dbtest"
	apperrors "hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

func strPtr(s string) *string { return &s }

func newCache(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewWithClient(rdb), mr
}

func TestPatientService(t *testing.T) {
	ctx := context.Background()
	svc := NewPatientService(repository.NewPatientRepository(dbtest.New(t)))

	created, err := svc.Create(ctx, PatientInput{Name: "Ann", Age: 34, Gender: model.GenderFemale})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Diagnosis)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	updated, err := svc.Update(ctx, created.ID, PatientUpdate{Age: intPtr(35), Diagnosis: strPtr("Flu")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, 35, updated.Age)
	require.NotNil(t, updated.Diagnosis)
	assert.Equal(t, "Flu", *updated.Diagnosis)

	_, err = svc.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrPatientNotFound)
	_, err = svc.Update(ctx, "does-not-exist", PatientUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrPatientNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), apperrors.ErrPatientNotFound)
}

func intPtr(i int) *int { return &i }

func TestDoctorService_CachesList(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	svc := NewDoctorService(repository.NewDoctorRepository(dbtest.New(t)), c)

	_, err := svc.Create(ctx, DoctorInput{Name: "Dr. Grey", Specialty: "Surgery"})
	require.NoError(t, err)

	doctors, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, []string{}, doctors[0].Availability)
	assert.True(t, mr.Exists(doctorsCacheKey))

	cached, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, doctors[0].ID, cached[0].ID)

	_, err = svc.Create(ctx, DoctorInput{Name: "Dr. House", Specialty: "Diagnostics", Availability: []string{"Mon"}})
	require.NoError(t, err)
	assert.False(t, mr.Exists(doctorsCacheKey))

	doctors, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)

	mr.FastForward(doctorsCacheTTL + time.Second)
	assert.False(t, mr.Exists(doctorsCacheKey))
}

func TestDoctorService_CacheDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	mr.Close()
	svc := NewDoctorService(repository.NewDoctorRepository(dbtest.New(t)), c)

	_, err := svc.Create(ctx, DoctorInput{Name: "Dr. Grey", Specialty: "Surgery"})
	require.NoError(t, err)

	doctors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	patients := repository.NewPatientRepository(gormDB)
	doctors := repository.NewDoctorRepository(gormDB)
	svc := NewAppointmentService(repository.NewAppointmentRepository(gormDB), patients, doctors)

	patient := &model.Patient{Name: "Ann", Age: 30, Gender: model.GenderFemale}
	require.NoError(t, patients.Create(ctx, patient))
	when := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	appt, err := svc.Create(ctx, AppointmentInput{PatientID: patient.ID, Datetime: when})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppointmentReason, appt.Reason)
	assert.Nil(t, appt.DoctorID)

	_, err = svc.Create(ctx, AppointmentInput{PatientID: "missing", Datetime: when})
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, err = svc.Create(ctx, AppointmentInput{PatientID: patient.ID, DoctorID: strPtr("missing"), Datetime: when})
	assert.ErrorIs(t, err, ErrUnknownReference)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Patient)
	assert.Equal(t, "Ann", list[0].Patient.Name)
}

func TestRecordService(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	patients := repository.NewPatientRepository(gormDB)
	doctors := repository.NewDoctorRepository(gormDB)
	svc := NewRecordService(repository.NewRecordRepository(gormDB), patients, doctors).(*recordService)

	fixed := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	patient := &model.Patient{Name: "Bo", Age: 50, Gender: model.GenderMale}
	require.NoError(t, patients.Create(ctx, patient))
	doctor := &model.Doctor{Name: "Dr. Who", Specialty: "Time"}
	require.NoError(t, doctors.Create(ctx, doctor))

	rec, err := svc.Create(ctx, RecordInput{PatientID: patient.ID, DoctorID: &doctor.ID, Notes: strPtr("rest")})
	require.NoError(t, err)
	assert.Equal(t, model.RecordPrescription, rec.Type)
	assert.True(t, fixed.Equal(rec.Date))

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Doctor)
	assert.Equal(t, "Dr. Who", got.Doctor.Name)

	_, err = svc.Create(ctx, RecordInput{PatientID: "missing"})
	assert.ErrorIs(t, err, ErrUnknownReference)

	list, err := svc.List(ctx, repository.RecordFilter{PatientID: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	_, err = svc.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID), apperrors.ErrRecordNotFound)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	svc := NewUserService(repository.NewUserRepository(dbtest.New(t)), c)

	admin, err := svc.Create(ctx, CreateUserInput{Name: "Root", Email: "root@test.local", Password: "secret123", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	_, err = svc.Create(ctx, CreateUserInput{Name: "Dup", Email: "root@test.local", Password: "secret123", Role: model.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	other, err := svc.Create(ctx, CreateUserInput{Name: "Other", Email: "other@test.local", Password: "secret123", Role: model.RoleUser})
	require.NoError(t, err)

	got, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", got.Name)
	assert.True(t, mr.Exists("user:"+other.ID))

	updated, err := svc.Update(ctx, other.ID, UpdateUserInput{Name: strPtr("Renamed"), Password: strPtr("newpass1")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, model.RoleUser, updated.Role)
	assert.False(t, mr.Exists("user:"+other.ID))

	_, err = svc.Update(ctx, other.ID, UpdateUserInput{Email: strPtr("root@test.local")})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	_, err = svc.Update(ctx, "missing", UpdateUserInput{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.Delete(ctx, other.ID))
	_, err = svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID), apperrors.ErrUserNotFound)
}
