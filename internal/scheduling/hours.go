package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinicbase/server/internal/config"
)

// WorkingHours is the clinic schedule template the rule engine works
// against. It is injected from configuration; nothing in this package
// hard-codes clinic hours.
type WorkingHours struct {
	DayStart      string // first bookable slot, HH:MM:SS
	DayEnd        string // last bookable slot, HH:MM:SS (inclusive)
	SlotMinutes   int
	HorizonMonths int
	CancelNotice  time.Duration
}

// HoursFromConfig builds the working-hours template from application
// configuration.
func HoursFromConfig(cfg config.ScheduleConfig) WorkingHours {
	return WorkingHours{
		DayStart:      cfg.DayStart,
		DayEnd:        cfg.DayEnd,
		SlotMinutes:   cfg.SlotMinutes,
		HorizonMonths: cfg.BookingHorizonMonths,
		CancelNotice:  time.Duration(cfg.CancellationNoticeHours) * time.Hour,
	}
}

// SlotTemplate returns every bookable time of day from DayStart to
// DayEnd inclusive, stepping SlotMinutes. With the default 09:00-17:00
// template and 30-minute slots this yields 17 entries.
func (wh WorkingHours) SlotTemplate() []string {
	start, err1 := clockToMinutes(wh.DayStart)
	end, err2 := clockToMinutes(wh.DayEnd)
	if err1 != nil || err2 != nil || wh.SlotMinutes <= 0 {
		return nil
	}

	var slots []string
	for m := start; m <= end; m += wh.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d:00", m/60, m%60))
	}
	return slots
}

// Contains reports whether the slot time falls within working hours.
// DayEnd itself is bookable, nothing after it is.
func (wh WorkingHours) Contains(slot string) bool {
	// HH:MM:SS strings are fixed width, so ordering is lexicographic.
	return slot >= wh.DayStart && slot <= wh.DayEnd
}

// OnSlotBoundary reports whether the time lands exactly on a slot
// boundary of the template.
func (wh WorkingHours) OnSlotBoundary(slot string) bool {
	m, err := clockToMinutes(slot)
	if err != nil {
		return false
	}
	start, err := clockToMinutes(wh.DayStart)
	if err != nil || wh.SlotMinutes <= 0 {
		return false
	}
	return (m-start)%wh.SlotMinutes == 0
}

// ParseClock validates an HH:MM:SS time-of-day string and returns its
// components. Seconds must be zero for bookable slots.
func ParseClock(s string) (hour, minute, second int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("time must be HH:MM:SS: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	second, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid second in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour, minute, second, nil
}

func clockToMinutes(s string) (int, error) {
	h, m, _, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
