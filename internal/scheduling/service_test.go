package scheduling

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicbase/server/internal/models"
)

// newTestService builds a Service over an in-memory database with the
// clock pinned to Wednesday 2025-03-05 10:00 local time.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would get its own empty in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Doctor{},
		&models.Patient{},
		&models.RefreshToken{},
		&models.Appointment{},
		&models.MedicalRecord{},
		&models.Prescription{},
	))

	return &Service{
		db:    db,
		hours: defaultHours(),
		log:   zap.NewNop(),
		now: func() time.Time {
			return time.Date(2025, time.March, 5, 10, 0, 0, 0, time.Local)
		},
	}
}

func createDoctor(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	doctor := models.User{
		Email:     "doctor@clinic.test",
		Password:  "hashed",
		FirstName: "Dana",
		LastName:  "Reyes",
		Role:      models.RoleDoctor,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&doctor).Error)
	require.NoError(t, db.Create(&models.Doctor{
		UserID:         doctor.ID,
		Specialization: "Cardiology",
		LicenseNumber:  "LIC-100",
	}).Error)
	return doctor
}

func createPatient(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	patient := models.User{
		Email:     "patient@clinic.test",
		Password:  "hashed",
		FirstName: "Pat",
		LastName:  "Kim",
		Role:      models.RolePatient,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&patient).Error)
	require.NoError(t, db.Create(&models.Patient{UserID: patient.ID}).Error)
	return patient
}

func TestBookThenCheckSlot(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)
	patient := createPatient(t, s.db)

	verdict, err := s.CheckSlotAvailability(doctor.ID, "2025-03-10", "10:00:00")
	require.NoError(t, err)
	assert.True(t, verdict.Available)

	appt, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      "2025-03-10",
		Time:      "10:00:00",
		Reason:    "checkup",
	})
	require.NoError(t, err)
	require.True(t, verdict.Available)
	require.NotNil(t, appt)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.NotEmpty(t, appt.ID)

	verdict, err = s.CheckSlotAvailability(doctor.ID, "2025-03-10", "10:00:00")
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonSlotTaken, verdict.Reason)

	// Idempotent: same answer with no intervening writes.
	again, err := s.CheckSlotAvailability(doctor.ID, "2025-03-10", "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, verdict, again)
}

func TestBookTakenSlotRejected(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)
	patient := createPatient(t, s.db)

	_, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: "2025-03-10", Time: "14:00:00",
	})
	require.NoError(t, err)
	require.True(t, verdict.Available)

	appt, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: "2025-03-10", Time: "14:00:00",
	})
	require.NoError(t, err)
	assert.Nil(t, appt)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonSlotTaken, verdict.Reason)
}

func TestCancelledSlotIsBookableAgain(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)
	patient := createPatient(t, s.db)

	appt, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: "2025-03-10", Time: "11:00:00",
	})
	require.NoError(t, err)
	require.True(t, verdict.Available)

	require.NoError(t, s.db.Model(appt).Update("status", models.StatusCancelled).Error)

	verdict, err = s.CheckSlotAvailability(doctor.ID, "2025-03-10", "11:00:00")
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheckSlotUnknownDoctor(t *testing.T) {
	s := newTestService(t)

	verdict, err := s.CheckSlotAvailability("b5e7d9a0-0000-0000-0000-000000000000", "2025-03-10", "10:00:00")
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonDoctorNotFound, verdict.Reason)
}

func TestCheckSlotInvalidDate(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)

	verdict, err := s.CheckSlotAvailability(doctor.ID, "10-03-2025", "10:00:00")
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonInvalidDate, verdict.Reason)
}

func TestBookInvalidDate(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)
	patient := createPatient(t, s.db)

	appt, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: "not-a-date", Time: "10:00:00",
	})
	require.NoError(t, err)
	assert.Nil(t, appt)
	assert.Equal(t, ReasonInvalidDate, verdict.Reason)
}

func TestAvailableSlotsExcludesBookedSlot(t *testing.T) {
	s := newTestService(t)
	doctor := createDoctor(t, s.db)
	patient := createPatient(t, s.db)

	result, err := s.AvailableSlots(doctor.ID, "2025-03-10")
	require.NoError(t, err)
	require.True(t, result.Available)
	assert.Len(t, result.Slots, 17)
	require.NotNil(t, result.Doctor)
	assert.Equal(t, doctor.ID, result.Doctor.ID)

	_, verdict, err := s.Book(BookingRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: "2025-03-10", Time: "10:00:00",
	})
	require.NoError(t, err)
	require.True(t, verdict.Available)

	result, err = s.AvailableSlots(doctor.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, result.Slots, 16)
	assert.NotContains(t, result.Slots, "10:00:00")
}

func TestIsLockContention(t *testing.T) {
	assert.True(t, isLockContention(&mysql.MySQLError{Number: 1213}))
	assert.True(t, isLockContention(&mysql.MySQLError{Number: 1205}))
	assert.True(t, isLockContention(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1213})))

	assert.False(t, isLockContention(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isLockContention(errors.New("connection refused")))
	assert.False(t, isLockContention(nil))
}
