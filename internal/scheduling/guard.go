package scheduling

// Rejection reasons returned by the rule engine. These are surfaced
// verbatim in API responses, so the wording is part of the contract.
const (
	ReasonDoctorNotFound      = "Doctor not found"
	ReasonDateNotFuture       = "Appointment date must be in the future"
	ReasonDateBeyondHorizon   = "Appointment date cannot be more than 3 months in the future"
	ReasonWeekdaysOnly        = "Appointments are only available on weekdays (Monday to Friday)"
	ReasonOutsideWorkingHours = "Appointments are only available between 9:00 AM and 5:00 PM"
	ReasonSlotTaken           = "Time slot is already booked"

	// Availability-specific wording.
	ReasonPastDate       = "Date must be in the future"
	ReasonWeekendsClosed = "Appointments are only available on weekdays"
	ReasonInvalidDate    = "Invalid date format, expected YYYY-MM-DD"
)

// Verdict is the result of a booking guard check. Expected business
// violations are carried here as data; they are never Go errors.
type Verdict struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func rejected(reason string) Verdict {
	return Verdict{Available: false, Reason: reason}
}

var allowed = Verdict{Available: true}

// ValidateSlotWindow runs the date/time portion of the booking guard:
// the date must be today or later, within the booking horizon, on a
// weekday, and the time must fall inside working hours. Checks run in
// order and the first failure wins. Doctor existence and slot
// occupancy are checked by the Service, which owns storage access.
func (wh WorkingHours) ValidateSlotWindow(today Date, date Date, slot string) Verdict {
	if date.Before(today) {
		return rejected(ReasonDateNotFuture)
	}
	if date.After(today.AddMonths(wh.HorizonMonths)) {
		return rejected(ReasonDateBeyondHorizon)
	}
	if date.IsWeekend() {
		return rejected(ReasonWeekdaysOnly)
	}
	if !wh.Contains(slot) {
		return rejected(ReasonOutsideWorkingHours)
	}
	return allowed
}

// ValidateAvailabilityDate runs the date checks used when listing free
// slots for a day: past dates and weekends are rejected.
func (wh WorkingHours) ValidateAvailabilityDate(today Date, date Date) Verdict {
	if date.Before(today) {
		return rejected(ReasonPastDate)
	}
	if date.IsWeekend() {
		return rejected(ReasonWeekendsClosed)
	}
	return allowed
}

// FreeSlots filters the working-hours template down to the slots not
// present in booked. Order of the template is preserved.
func (wh WorkingHours) FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	template := wh.SlotTemplate()
	free := make([]string, 0, len(template))
	for _, slot := range template {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
