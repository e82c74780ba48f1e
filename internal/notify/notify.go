package notify

import (
	"go.uber.org/zap"

	"github.com/clinicbase/server/internal/metrics"
	"github.com/clinicbase/server/internal/models"
)

// Notifier delivers appointment notifications to patients and doctors.
// The current transport only logs; a real mailer or SMS gateway slots
// in behind the same methods. Callers must treat sends as best-effort:
// a failed notification is logged and never rolls back the status
// change it announces.
type Notifier struct {
	log *zap.Logger
}

// New creates a Notifier.
func New(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

// SendAppointmentConfirmation announces a confirmed appointment.
func (n *Notifier) SendAppointmentConfirmation(appt *models.Appointment, patient, doctor *models.User) error {
	n.log.Info("appointment confirmation sent",
		zap.String("appointment_id", appt.ID),
		zap.String("patient_email", patient.Email),
		zap.String("doctor_email", doctor.Email),
		zap.String("date", appt.AppointmentDate),
		zap.String("time", appt.AppointmentTime),
	)
	metrics.RecordNotificationSent("confirmation")
	return nil
}

// SendAppointmentCancellation announces a cancelled appointment.
func (n *Notifier) SendAppointmentCancellation(appt *models.Appointment, patient, doctor *models.User) error {
	n.log.Info("appointment cancellation sent",
		zap.String("appointment_id", appt.ID),
		zap.String("patient_email", patient.Email),
		zap.String("doctor_email", doctor.Email),
		zap.String("date", appt.AppointmentDate),
		zap.String("time", appt.AppointmentTime),
	)
	metrics.RecordNotificationSent("cancellation")
	return nil
}
