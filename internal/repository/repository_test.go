package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospital/internal/db/dbtest"
	"hospital/internal/model"
)

func strPtr(s string) *string { return &s }

func seedPatient(t *testing.T, repo PatientRepository, name string) *model.Patient {
	t.Helper()
	p := &model.Patient{Name: name, Age: 40, Gender: model.GenderOther}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(dbtest.New(t))

	t.Run("create assigns id and default role", func(t *testing.T) {
		u := &model.User{Name: "Nurse", Email: "nurse@test.local", PasswordHash: "hash"}
		require.NoError(t, repo.Create(ctx, u))
		assert.Len(t, u.ID, 36)
		assert.Equal(t, model.RoleUser, u.Role)

		found, err := repo.FindByEmail(ctx, "nurse@test.local")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Name: "Other", Email: "nurse@test.local", PasswordHash: "hash"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("update and delete", func(t *testing.T) {
		u, err := repo.FindByEmail(ctx, "nurse@test.local")
		require.NoError(t, err)

		u.Name = "Head Nurse"
		require.NoError(t, repo.Update(ctx, u))

		reloaded, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Head Nurse", reloaded.Name)

		require.NoError(t, repo.Delete(ctx, u.ID))
		_, err = repo.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, u.ID), gorm.ErrRecordNotFound)
	})
}

func TestPatientRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	patients := NewPatientRepository(gormDB)
	appointments := NewAppointmentRepository(gormDB)
	records := NewRecordRepository(gormDB)

	keep := seedPatient(t, patients, "Keep")
	drop := seedPatient(t, patients, "Drop")

	for _, p := range []*model.Patient{keep, drop} {
		require.NoError(t, appointments.Create(ctx, &model.Appointment{PatientID: p.ID, Datetime: time.Now()}))
		require.NoError(t, records.Create(ctx, &model.Record{PatientID: p.ID}))
	}

	require.NoError(t, patients.Delete(ctx, drop.ID))

	exists, err := patients.Exists(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	appts, err := appointments.List(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, keep.ID, appts[0].PatientID)

	recs, err := records.List(ctx, RecordFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, keep.ID, recs[0].PatientID)

	assert.ErrorIs(t, patients.Delete(ctx, drop.ID), gorm.ErrRecordNotFound)
}

func TestDoctorRepository_AvailabilityIsAList(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	repo := NewDoctorRepository(gormDB)

	require.NoError(t, repo.Create(ctx, &model.Doctor{Name: "Dr. Grey", Specialty: "Surgery", Availability: []string{"Mon", "Thu"}}))
	require.NoError(t, repo.Create(ctx, &model.Doctor{Name: "Dr. House", Specialty: "Diagnostics"}))
	require.NoError(t, gormDB.Exec("INSERT INTO doctors (id, name, specialty, availability, created_at, updated_at) VALUES (?, ?, ?, NULL, ?, ?)",
		"00000000-0000-0000-0000-000000000001", "Dr. Legacy", "General", time.Now(), time.Now()).Error)

	doctors, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 3)

	byName := map[string][]string{}
	for _, d := range doctors {
		byName[d.Name] = d.Availability
	}
	assert.Equal(t, []string{"Mon", "Thu"}, byName["Dr. Grey"])
	assert.Equal(t, []string{}, byName["Dr. House"])
	assert.Equal(t, []string{}, byName["Dr. Legacy"])

	found, err := repo.FindByName(ctx, "Dr. Grey")
	require.NoError(t, err)
	exists, err := repo.Exists(ctx, found.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAppointmentRepository_ListIncludesParties(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	patient := seedPatient(t, NewPatientRepository(gormDB), "Ann")
	doctor := &model.Doctor{Name: "Dr. Who", Specialty: "Time"}
	require.NoError(t, NewDoctorRepository(gormDB).Create(ctx, doctor))

	repo := NewAppointmentRepository(gormDB)
	later := &model.Appointment{PatientID: patient.ID, DoctorID: &doctor.ID, Datetime: time.Now().Add(48 * time.Hour)}
	sooner := &model.Appointment{PatientID: patient.ID, Datetime: time.Now().Add(time.Hour), Reason: "Follow-up"}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))
	assert.Equal(t, model.DefaultAppointmentReason, later.Reason)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, sooner.ID, list[0].ID)
	require.NotNil(t, list[0].Patient)
	assert.Equal(t, "Ann", list[0].Patient.Name)
	assert.Nil(t, list[0].Doctor)

	require.NotNil(t, list[1].Doctor)
	assert.Equal(t, "Dr. Who", list[1].Doctor.Name)
}

func TestRecordRepository_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	patients := NewPatientRepository(gormDB)
	a := seedPatient(t, patients, "A")
	b := seedPatient(t, patients, "B")

	repo := NewRecordRepository(gormDB)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	oldest := &model.Record{PatientID: a.ID, Date: base, Notes: strPtr("first visit"), Type: model.RecordNote}
	newest := &model.Record{PatientID: a.ID, Date: base.Add(72 * time.Hour), Medication: strPtr("Ibuprofen")}
	other := &model.Record{PatientID: b.ID, Date: base.Add(24 * time.Hour)}
	for _, r := range []*model.Record{oldest, newest, other} {
		require.NoError(t, repo.Create(ctx, r))
	}
	assert.Equal(t, model.RecordPrescription, newest.Type)

	all, err := repo.List(ctx, RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, other.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	onlyA, err := repo.List(ctx, RecordFilter{PatientID: a.ID})
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, newest.ID, onlyA[0].ID)
	require.NotNil(t, onlyA[0].Patient)
	assert.Equal(t, "A", onlyA[0].Patient.Name)

	got, err := repo.FindByID(ctx, oldest.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RecordNote, got.Type)

	require.NoError(t, repo.Delete(ctx, oldest.ID))
	_, err = repo.FindByID(ctx, oldest.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, oldest.ID), gorm.ErrRecordNotFound)
}

func TestRecordRepository_DefaultDate(t *testing.T) {
	ctx := context.Background()
	gormDB := dbtest.New(t)
	p := seedPatient(t, NewPatientRepository(gormDB), "C")

	before := time.Now().Add(-time.Second)
	r := &model.Record{PatientID: p.ID}
	require.NoError(t, NewRecordRepository(gormDB).Create(ctx, r))
	assert.True(t, r.Date.After(before))
}
