package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-04T10:20:30Z", time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)},
		{"2025-03-04T10:20:30.5+02:00", time.Date(2025, 3, 4, 8, 20, 30, 500000000, time.UTC)},
		{"2025-03-04T10:20:30", time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)},
		{"2025-03-04T10:20", time.Date(2025, 3, 4, 10, 20, 0, 0, time.UTC)},
		{"2025-03-04", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "tomorrow", "2025-13-01", "04/03/2025"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidator_Patient(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     PatientRequest
		wantErr string
	}{
		{"valid", PatientRequest{Name: "Ann", Age: intPtr(30), Gender: model.GenderFemale}, ""},
		{"newborn", PatientRequest{Name: "Baby", Age: intPtr(0), Gender: model.GenderOther}, ""},
		{"age too high", PatientRequest{Name: "Old", Age: intPtr(200), Gender: model.GenderMale}, "age must be at most 120"},
		{"negative age", PatientRequest{Name: "Neg", Age: intPtr(-1), Gender: model.GenderMale}, "age must be at least 0"},
		{"missing age", PatientRequest{Name: "NoAge", Gender: model.GenderMale}, "age is required"},
		{"bad gender", PatientRequest{Name: "X", Age: intPtr(3), Gender: "robot"}, "gender must be one of"},
		{"empty name", PatientRequest{Age: intPtr(3), Gender: model.GenderMale}, "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_PartialUpdates(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&PatientUpdateRequest{}))
	assert.NoError(t, v.Validate(&PatientUpdateRequest{Age: intPtr(0)}))
	assert.Error(t, v.Validate(&PatientUpdateRequest{Name: strPtr("")}))
	assert.Error(t, v.Validate(&PatientUpdateRequest{Age: intPtr(121)}))

	assert.NoError(t, v.Validate(&UpdateUserRequest{Role: strPtr(model.RoleAdmin)}))
	assert.Error(t, v.Validate(&UpdateUserRequest{Role: strPtr("superuser")}))
	assert.Error(t, v.Validate(&UpdateUserRequest{Email: strPtr("not-an-email")}))
	assert.Error(t, v.Validate(&UpdateUserRequest{Password: strPtr("123")}))
}

func TestValidator_Timestamps(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&AppointmentRequest{PatientID: "p", Datetime: "2025-06-01T09:00"}))
	err := v.Validate(&AppointmentRequest{PatientID: "p", Datetime: "next tuesday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datetime must be a date or date-time")

	assert.NoError(t, v.Validate(&RecordRequest{PatientID: "p"}))
	assert.Error(t, v.Validate(&RecordRequest{PatientID: "p", Date: strPtr("yesterday")}))
	assert.Error(t, v.Validate(&RecordRequest{PatientID: "p", Type: strPtr("invoice")}))
}

func TestRequestDefaults(t *testing.T) {
	assert.Equal(t, "User", RegisterRequest{Email: "a@b.c", Password: "secret1"}.toInput().Name)
	assert.Equal(t, "Named", RegisterRequest{Name: strPtr("Named")}.toInput().Name)

	appt, err := AppointmentRequest{PatientID: "p", Datetime: "2025-06-01"}.toInput()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppointmentReason, appt.Reason)

	rec, err := RecordRequest{PatientID: "p"}.toInput()
	require.NoError(t, err)
	assert.Empty(t, rec.Type)
	assert.True(t, rec.Date.IsZero())

	emptyDoctor := AppointmentRequest{PatientID: "p", DoctorID: strPtr(""), Datetime: "2025-06-01"}
	require.NoError(t, NewValidator().Validate(&emptyDoctor))
	appt, err = emptyDoctor.toInput()
	require.NoError(t, err)
	assert.Nil(t, appt.DoctorID)

	recIn := RecordRequest{PatientID: "p", DoctorID: strPtr("")}
	require.NoError(t, NewValidator().Validate(&recIn))
	rec, err = recIn.toInput()
	require.NoError(t, err)
	assert.Nil(t, rec.DoctorID)

	rec, err = RecordRequest{PatientID: "p", DoctorID: strPtr("d-1")}.toInput()
	require.NoError(t, err)
	require.NotNil(t, rec.DoctorID)
	assert.Equal(t, "d-1", *rec.DoctorID)

	assert.Equal(t, []string{}, DoctorRequest{Name: "D", Specialty: "S"}.toInput().Availability)
	assert.Equal(t, model.RoleUser, CreateUserRequest{Name: "U"}.toInput().Role)
}
