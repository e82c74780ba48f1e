package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbase/server/internal/models"
)

func apptAt(scheduledAt time.Time, status models.AppointmentStatus) *models.Appointment {
	return &models.Appointment{
		AppointmentDate: scheduledAt.Format("2006-01-02"),
		AppointmentTime: scheduledAt.Format("15:04:05"),
		Status:          status,
	}
}

func TestCanCancelAppointment(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	notice := 2 * time.Hour

	tests := []struct {
		name   string
		appt   *models.Appointment
		reason string
	}{
		{"pending well in the future", apptAt(now.Add(3*time.Hour), models.StatusPending), ""},
		{"pending next week", apptAt(now.AddDate(0, 0, 7), models.StatusPending), ""},
		{"confirmed is not cancellable by patient", apptAt(now.Add(24*time.Hour), models.StatusConfirmed), ReasonNotPending},
		{"completed is terminal", apptAt(now.Add(24*time.Hour), models.StatusCompleted), ReasonNotPending},
		{"already cancelled", apptAt(now.Add(24*time.Hour), models.StatusCancelled), ReasonNotPending},
		{"already passed", apptAt(now.Add(-time.Hour), models.StatusPending), ReasonAlreadyPassed},
		{"scheduled exactly now", apptAt(now, models.StatusPending), ReasonAlreadyPassed},
		{"one hour ahead", apptAt(now.Add(time.Hour), models.StatusPending), ReasonInsideCancelWindow},
		{"exactly two hours ahead", apptAt(now.Add(2*time.Hour), models.StatusPending), ReasonInsideCancelWindow},
		{"just over two hours ahead", apptAt(now.Add(2*time.Hour+time.Minute), models.StatusPending), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := CanCancelAppointment(tt.appt, now, notice)
			if tt.reason == "" {
				assert.True(t, verdict.CanCancel)
				assert.Empty(t, verdict.Reason)
			} else {
				assert.False(t, verdict.CanCancel)
				assert.Equal(t, tt.reason, verdict.Reason)
			}
		})
	}
}

func TestCanCancelEligibilityIsMonotonic(t *testing.T) {
	// Once an appointment stops being cancellable as time advances, it
	// never becomes cancellable again.
	scheduled := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.Local)
	appt := apptAt(scheduled, models.StatusPending)
	notice := 2 * time.Hour

	wasEligible := true
	for now := scheduled.Add(-6 * time.Hour); now.Before(scheduled.Add(2 * time.Hour)); now = now.Add(15 * time.Minute) {
		eligible := CanCancelAppointment(appt, now, notice).CanCancel
		if !wasEligible {
			assert.False(t, eligible, "eligibility regained at %s", now)
		}
		wasEligible = eligible
	}
}

func TestCanCancelUnparsableScheduleIsRejected(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	appt := &models.Appointment{AppointmentDate: "not-a-date", AppointmentTime: "10:00:00", Status: models.StatusPending}

	verdict := CanCancelAppointment(appt, now, 2*time.Hour)
	assert.False(t, verdict.CanCancel)
}
