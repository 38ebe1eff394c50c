// Package timeslot provides clock-time arithmetic for the booking engine.
// Times are venue-local "HH:MM" strings; intervals are half-open minute
// ranges, so a booking ending exactly when another starts does not overlap.
package timeslot

import (
	"errors"
	"fmt"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	ErrInvalidClockTime   = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidGranularity = errors.New("granularity must be a positive number of minutes")
)

// ToMinutes converts an "HH:MM" clock time to its minute offset from midnight.
func ToMinutes(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}

	hour, ok := parseTwoDigits(clock[0], clock[1])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}

	minute, ok := parseTwoDigits(clock[3], clock[4])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, clock)
	}

	return hour*minutesPerHour + minute, nil
}

// FromMinutes converts a minute offset to "HH:MM", wrapping modulo 24 hours.
func FromMinutes(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// AddMinutes shifts a clock time by delta minutes, wrapping modulo 24 hours.
func AddMinutes(clock string, delta int) (string, error) {
	minutes, err := ToMinutes(clock)
	if err != nil {
		return "", err
	}

	return FromMinutes(minutes + delta), nil
}

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Sequence generates every candidate slot in [startBound, endBound) at the
// given granularity. The result is deterministic and empty when the window
// is empty; intersecting with a venue's actual working hours is left to the
// caller.
func Sequence(startBound, endBound string, granularity int) ([]string, error) {
	if granularity <= 0 {
		return nil, ErrInvalidGranularity
	}

	start, err := ToMinutes(startBound)
	if err != nil {
		return nil, err
	}

	end, err := ToMinutes(endBound)
	if err != nil {
		return nil, err
	}

	if end <= start {
		return []string{}, nil
	}

	slots := make([]string, 0, (end-start)/granularity+1)
	for minute := start; minute < end; minute += granularity {
		slots = append(slots, FromMinutes(minute))
	}

	return slots, nil
}

func parseTwoDigits(tens, units byte) (int, bool) {
	if tens < '0' || tens > '9' || units < '0' || units > '9' {
		return 0, false
	}

	return int(tens-'0')*10 + int(units-'0'), true
}
