package simulation

import (
	"fmt"
	"sort"
	"time"
)

// Schedule is the fixed wall-clock tick schedule, local to the deployment's
// configured time zone. The engine never decides when ticks fire; the
// scheduler (or an admin trigger) does, and the schedule only answers
// which slot a moment belongs to.
type Schedule struct {
	location *time.Location
	slots    []slotOfDay // sorted minutes-of-day
}

type slotOfDay struct {
	hour   int
	minute int
}

func (s slotOfDay) minutesOfDay() int {
	return s.hour*60 + s.minute
}

// DefaultSlots is the observed production schedule
var DefaultSlots = []string{"00:00", "12:00", "15:00", "18:00", "21:00"}

// NewSchedule parses HH:MM slot strings in the given IANA time zone
func NewSchedule(timezone string, slots []string) (*Schedule, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("schedule needs at least one slot")
	}
	parsed := make([]slotOfDay, 0, len(slots))
	for _, raw := range slots {
		var hour, minute int
		if _, err := fmt.Sscanf(raw, "%d:%d", &hour, &minute); err != nil {
			return nil, fmt.Errorf("invalid slot %q: %w", raw, err)
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("slot %q out of range", raw)
		}
		parsed = append(parsed, slotOfDay{hour: hour, minute: minute})
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].minutesOfDay() < parsed[j].minutesOfDay() })
	return &Schedule{location: location, slots: parsed}, nil
}

// MustNewSchedule panics on an invalid schedule; for use with compile-time
// defaults
func MustNewSchedule(timezone string, slots []string) *Schedule {
	s, err := NewSchedule(timezone, slots)
	if err != nil {
		panic(err)
	}
	return s
}

// NextAfter returns the first scheduled slot strictly after t
func (s *Schedule) NextAfter(t time.Time) time.Time {
	local := t.In(s.location)
	year, month, day := local.Date()
	for _, slot := range s.slots {
		candidate := time.Date(year, month, day, slot.hour, slot.minute, 0, 0, s.location)
		if candidate.After(local) {
			return candidate
		}
	}
	first := s.slots[0]
	return time.Date(year, month, day, first.hour, first.minute, 0, 0, s.location).AddDate(0, 0, 1)
}

// SlotFor returns the most recent scheduled slot at or before t. Admin
// triggers use this so a manual run lands in the same idempotency slot as
// the scheduled run it replaces.
func (s *Schedule) SlotFor(t time.Time) time.Time {
	local := t.In(s.location)
	year, month, day := local.Date()
	for i := len(s.slots) - 1; i >= 0; i-- {
		slot := s.slots[i]
		candidate := time.Date(year, month, day, slot.hour, slot.minute, 0, 0, s.location)
		if !candidate.After(local) {
			return candidate
		}
	}
	last := s.slots[len(s.slots)-1]
	return time.Date(year, month, day, last.hour, last.minute, 0, 0, s.location).AddDate(0, 0, -1)
}
