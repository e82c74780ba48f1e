package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicbase/server/internal/config"
	"github.com/clinicbase/server/internal/metrics"
	"github.com/clinicbase/server/internal/models"
)

// Errors that callers map to HTTP statuses. Business-rule rejections
// are not errors; they come back as Verdict / CancelVerdict values.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotOwner            = errors.New("appointment belongs to another user")
)

// activeStatuses are the statuses that occupy a slot.
var activeStatuses = []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

// Service owns the appointment booking rules and their storage access.
type Service struct {
	db    *gorm.DB
	hours WorkingHours
	log   *zap.Logger
	now   func() time.Time
}

// NewService creates a scheduling service with the clinic's configured
// working hours.
func NewService(db *gorm.DB, cfg config.ScheduleConfig, log *zap.Logger) *Service {
	return &Service{
		db:    db,
		hours: HoursFromConfig(cfg),
		log:   log,
		now:   time.Now,
	}
}

// Hours exposes the injected working-hours template.
func (s *Service) Hours() WorkingHours {
	return s.hours
}

// AvailabilityResult is the response of an availability query.
type AvailabilityResult struct {
	Available bool                  `json:"available"`
	Slots     []string              `json:"slots,omitempty"`
	Date      string                `json:"date,omitempty"`
	Reason    string                `json:"reason,omitempty"`
	Doctor    *models.UserSanitized `json:"doctor,omitempty"`
}

// AvailableSlots computes the free slots for a doctor on a given day:
// the working-hours template minus every time already held by a
// pending or confirmed appointment. Read-only.
func (s *Service) AvailableSlots(doctorID, dateStr string) (*AvailabilityResult, error) {
	doctor, err := s.findDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return &AvailabilityResult{Available: false, Reason: ReasonDoctorNotFound}, nil
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		return &AvailabilityResult{Available: false, Reason: ReasonInvalidDate}, nil
	}

	if v := s.hours.ValidateAvailabilityDate(DateOf(s.now()), date); !v.Available {
		return &AvailabilityResult{Available: false, Reason: v.Reason}, nil
	}

	booked, err := s.bookedTimes(doctorID, date.String())
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}

	sanitized := doctor.Sanitize()
	return &AvailabilityResult{
		Available: true,
		Slots:     s.hours.FreeSlots(booked),
		Date:      date.String(),
		Doctor:    &sanitized,
	}, nil
}

// CheckSlotAvailability runs the full booking guard for a single slot:
// doctor exists, date in the future and within the horizon, weekday,
// working hours, slot not already held. First failure wins.
func (s *Service) CheckSlotAvailability(doctorID, dateStr, slot string) (Verdict, error) {
	doctor, err := s.findDoctor(doctorID)
	if err != nil {
		return Verdict{}, err
	}
	if doctor == nil {
		return rejected(ReasonDoctorNotFound), nil
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		return rejected(ReasonInvalidDate), nil
	}

	if v := s.hours.ValidateSlotWindow(DateOf(s.now()), date, slot); !v.Available {
		return v, nil
	}

	taken, err := s.slotTaken(s.db, doctorID, date.String(), slot)
	if err != nil {
		return Verdict{}, err
	}
	if taken {
		return rejected(ReasonSlotTaken), nil
	}
	return allowed, nil
}

// BookingRequest carries a validated patient booking.
type BookingRequest struct {
	PatientID string
	DoctorID  string
	Date      string
	Time      string
	Reason    string
	Notes     string
}

// errSlotRace aborts the booking transaction when the occupancy
// re-check fails under lock.
var errSlotRace = errors.New("slot taken inside transaction")

// isLockContention reports whether err is MySQL telling us we lost a
// race over the slot's index range: two concurrent bookings gap-lock
// the same empty range, then each insert waits on the other, and
// InnoDB rolls one back (ER_LOCK_DEADLOCK) or times it out
// (ER_LOCK_WAIT_TIMEOUT). The slot went to the other request, so the
// loser gets the same taken-slot verdict as a pre-booked slot.
func isLockContention(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
}

// Book runs the guard and, when it passes, inserts the pending
// appointment. The guard pass is CheckSlotAvailability; the occupancy
// re-check and the insert then happen inside one transaction that
// locks the competing slot rows, so two concurrent requests for the
// same (doctor, date, time) cannot both succeed. The loser gets a
// ReasonSlotTaken verdict whether it lost to the re-check or to an
// InnoDB deadlock rollback, never a silent double booking.
func (s *Service) Book(req BookingRequest) (*models.Appointment, Verdict, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, rejected(ReasonInvalidDate), nil
	}

	verdict, err := s.CheckSlotAvailability(req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, Verdict{}, err
	}
	if !verdict.Available {
		if verdict.Reason != ReasonDoctorNotFound {
			metrics.RecordBookingRejected(verdict.Reason)
		}
		return nil, verdict, nil
	}

	appointment := &models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date.String(),
		AppointmentTime: req.Time,
		Status:          models.StatusPending,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			// SELECT ... FOR UPDATE over the slot's index range.
			// InnoDB's next-key locking on idx_doctor_slot blocks a
			// concurrent insert for the same tuple until this
			// transaction finishes. Other dialects keep the plain
			// re-check.
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var competing []models.Appointment
		if err := q.
			Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
				req.DoctorID, date.String(), req.Time, activeStatuses).
			Find(&competing).Error; err != nil {
			return err
		}
		if len(competing) > 0 {
			return errSlotRace
		}
		return tx.Create(appointment).Error
	})
	if errors.Is(err, errSlotRace) || isLockContention(err) {
		metrics.RecordBookingConflict()
		return nil, rejected(ReasonSlotTaken), nil
	}
	if err != nil {
		return nil, Verdict{}, fmt.Errorf("book appointment: %w", err)
	}

	metrics.RecordBookingCreated()
	s.log.Info("appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("doctor_id", req.DoctorID),
		zap.String("patient_id", req.PatientID),
		zap.String("date", date.String()),
		zap.String("time", req.Time),
	)
	return appointment, allowed, nil
}

// UpdateStatus applies a doctor-side status transition. Only the owning
// doctor may act, and only transitions present in the status table are
// accepted; completed and cancelled are terminal.
func (s *Service) UpdateStatus(appointmentID, doctorID string, next models.AppointmentStatus, notes string) (*models.Appointment, Verdict, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Verdict{}, ErrAppointmentNotFound
		}
		return nil, Verdict{}, err
	}

	if appointment.DoctorID != doctorID {
		return nil, Verdict{}, ErrNotOwner
	}

	if !appointment.Status.CanTransitionTo(next) {
		return nil, rejected(fmt.Sprintf("Cannot change a %s appointment to %s", appointment.Status, next)), nil
	}

	previous := appointment.Status
	appointment.Status = next
	if notes != "" {
		appointment.Notes = notes
	}
	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, Verdict{}, fmt.Errorf("update appointment status: %w", err)
	}

	metrics.RecordStatusTransition(string(previous), string(next))
	s.log.Info("appointment status updated",
		zap.String("appointment_id", appointment.ID),
		zap.String("doctor_id", doctorID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	return &appointment, allowed, nil
}

// CancelByPatient cancels a pending appointment on behalf of its
// patient, subject to the eligibility rule.
func (s *Service) CancelByPatient(appointmentID, patientID, reason string) (*models.Appointment, CancelVerdict, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CancelVerdict{}, ErrAppointmentNotFound
		}
		return nil, CancelVerdict{}, err
	}

	if appointment.PatientID != patientID {
		return nil, CancelVerdict{}, ErrNotOwner
	}

	verdict := CanCancelAppointment(&appointment, s.now(), s.hours.CancelNotice)
	if !verdict.CanCancel {
		return nil, verdict, nil
	}

	previous := appointment.Status
	appointment.Status = models.StatusCancelled
	if reason != "" {
		appointment.Notes = reason
	}
	if err := s.db.Save(&appointment).Error; err != nil {
		return nil, CancelVerdict{}, fmt.Errorf("cancel appointment: %w", err)
	}

	metrics.RecordStatusTransition(string(previous), string(models.StatusCancelled))
	s.log.Info("appointment cancelled by patient",
		zap.String("appointment_id", appointment.ID),
		zap.String("patient_id", patientID),
	)
	return &appointment, verdict, nil
}

// findDoctor returns the doctor user with preloaded doctor details, or
// nil when no such doctor exists.
func (s *Service) findDoctor(doctorID string) (*models.User, error) {
	var doctor models.User
	err := s.db.Preload("Doctor").
		Where("id = ? AND role = ?", doctorID, models.RoleDoctor).
		First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return &doctor, nil
}

// bookedTimes lists the times held by pending/confirmed appointments
// for a doctor on a date.
func (s *Service) bookedTimes(doctorID, date string) ([]string, error) {
	var times []string
	err := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?", doctorID, date, activeStatuses).
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// slotTaken reports whether an active appointment already holds the
// exact slot.
func (s *Service) slotTaken(tx *gorm.DB, doctorID, date, slot string) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			doctorID, date, slot, activeStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
