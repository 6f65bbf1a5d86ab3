package planner

import (
	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/timegrid"
)

// FindCommonSlots returns, in ascending time order, every 30-minute-
// aligned start time between 07:00 and 22:00 at which all participants
// are simultaneously free for the full duration on the given weekday.
//
// A participant covers a candidate only if one single window of theirs
// contains the whole [start, start+duration) range; partial overlap
// across two of their own windows does not count. A participant with no
// windows on the day vetoes the entire day.
func FindCommonSlots(day int, participantIDs []string, windows []model.AvailabilityWindow, durationMins int) []string {
	perParticipant := make([][]model.AvailabilityWindow, len(participantIDs))
	for i, id := range participantIDs {
		for _, w := range windows {
			if w.MemberID == id && w.Day == day {
				perParticipant[i] = append(perParticipant[i], w)
			}
		}
		if len(perParticipant[i]) == 0 {
			return nil
		}
	}

	var common []string
	for _, slot := range timegrid.DaySlots() {
		slotStart, err := timegrid.TimeToMinutes(slot)
		if err != nil {
			continue
		}
		slotEnd := slotStart + durationMins

		worksForAll := true
		for _, participantWindows := range perParticipant {
			if !covered(participantWindows, slotStart, slotEnd) {
				worksForAll = false
				break
			}
		}
		if worksForAll {
			common = append(common, slot)
		}
	}
	return common
}

// covered reports whether any single window fully contains [start, end).
func covered(windows []model.AvailabilityWindow, start, end int) bool {
	for _, w := range windows {
		wStart, err := timegrid.TimeToMinutes(w.Start)
		if err != nil {
			continue
		}
		wEnd, err := timegrid.TimeToMinutes(w.End)
		if err != nil {
			continue
		}
		if start >= wStart && end <= wEnd {
			return true
		}
	}
	return false
}
