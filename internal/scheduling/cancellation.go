package scheduling

import (
	"time"

	"github.com/clinicbase/server/internal/models"
)

// Cancellation rejection reasons.
const (
	ReasonNotPending         = "Only pending appointments can be cancelled"
	ReasonAlreadyPassed      = "Cannot cancel appointments that have already passed"
	ReasonInsideCancelWindow = "Cannot cancel appointments within 2 hours of the scheduled time"
)

// CancelVerdict is the result of a patient cancellation-eligibility
// check.
type CancelVerdict struct {
	CanCancel bool   `json:"canCancel"`
	Reason    string `json:"reason,omitempty"`
}

// CanCancelAppointment decides whether a patient may cancel the
// appointment at the wall-clock moment now. Pure: the caller performs
// the actual status update.
//
// Eligibility requires the appointment to still be pending, scheduled
// strictly in the future, and more than notice ahead of now.
func CanCancelAppointment(appt *models.Appointment, now time.Time, notice time.Duration) CancelVerdict {
	if appt.Status != models.StatusPending {
		return CancelVerdict{CanCancel: false, Reason: ReasonNotPending}
	}

	date, err := ParseDate(appt.AppointmentDate)
	if err != nil {
		return CancelVerdict{CanCancel: false, Reason: ReasonAlreadyPassed}
	}
	scheduledAt, err := date.At(appt.AppointmentTime)
	if err != nil {
		return CancelVerdict{CanCancel: false, Reason: ReasonAlreadyPassed}
	}

	if !scheduledAt.After(now) {
		return CancelVerdict{CanCancel: false, Reason: ReasonAlreadyPassed}
	}
	if scheduledAt.Sub(now) <= notice {
		return CancelVerdict{CanCancel: false, Reason: ReasonInsideCancelWindow}
	}
	return CancelVerdict{CanCancel: true}
}
