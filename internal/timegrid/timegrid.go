// Package timegrid provides the clock/slot arithmetic shared by the
// availability editor and the placement engine. All times are naive
// minutes-of-day; there is no timezone conversion.
package timegrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operating-hours policy for scheduling: candidate slots run from DayStart
// (inclusive) to DayEnd (exclusive) on a fixed 30-minute grid.
const (
	SlotInterval  = 30
	DayStart      = "07:00"
	DayEnd        = "22:00"
	MinutesPerDay = 24 * 60
)

// ErrInvalidClock is returned for clock strings that are not exactly two
// colon-separated integers.
var ErrInvalidClock = errors.New("invalid clock time")

// TimeToMinutes parses an "HH:MM" clock string into minutes since
// midnight. Malformed input fails fast; values are never coerced.
func TimeToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight back to a zero-padded
// "HH:MM" string. Callers must keep the value in [0, 1440).
func MinutesToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// GenerateSlots returns the clock strings start, start+interval, ...
// strictly less than end. The result is empty if start >= end.
func GenerateSlots(start, end string, intervalMins int) ([]string, error) {
	startMins, err := TimeToMinutes(start)
	if err != nil {
		return nil, err
	}
	endMins, err := TimeToMinutes(end)
	if err != nil {
		return nil, err
	}

	var slots []string
	for m := startMins; m < endMins; m += intervalMins {
		slots = append(slots, MinutesToTime(m))
	}
	return slots, nil
}

// DaySlots returns the fixed candidate grid used for matching: 30-minute
// slots from 07:00 up to but excluding 22:00.
func DaySlots() []string {
	slots, err := GenerateSlots(DayStart, DayEnd, SlotInterval)
	if err != nil {
		// DayStart/DayEnd are compile-time constants
		panic(err)
	}
	return slots
}

// StartOfWeek returns midnight on the Monday of the week containing t,
// in t's location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekDates enumerates numWeeks*7 consecutive calendar dates anchored to
// the Monday of the week containing now, Monday first.
func WeekDates(now time.Time, numWeeks int) []time.Time {
	monday := StartOfWeek(now)
	dates := make([]time.Time, 0, numWeeks*7)
	for i := 0; i < numWeeks*7; i++ {
		dates = append(dates, monday.AddDate(0, 0, i))
	}
	return dates
}

// Combine anchors a clock string to a calendar date, producing an
// absolute timestamp in the date's location.
func Combine(date time.Time, clock string) (time.Time, error) {
	mins, err := TimeToMinutes(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, date.Location()), nil
}

// Aligned reports whether mins falls on the 30-minute grid.
func Aligned(mins int) bool {
	return mins%SlotInterval == 0
}

// ValidSlot reports whether mins is a grid-aligned slot start inside a
// single day. "25:00" parses cleanly but is not a valid slot.
func ValidSlot(mins int) bool {
	return Aligned(mins) && mins >= 0 && mins < MinutesPerDay
}
