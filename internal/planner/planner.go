// Package planner contains the matching/placement engine: given members,
// their weekly availability windows, and a list of goals, it produces at
// most one concrete calendar event per goal within a bounded horizon.
//
// The engine is pure and synchronous. It never mutates its inputs, holds
// no state between invocations, and is fully deterministic: identical
// inputs always produce identical output, in the same order.
package planner

import (
	"fmt"
	"time"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/timegrid"
)

// horizonStride is how far apart, in days, consecutive candidate dates
// for the same goal are. Combined with the goalIndex*2 starting offset it
// staggers goals onto different weekdays and caps each goal at two
// attempts across a 14-day horizon.
//
// TODO: revisit the stride policy; two candidate days out of fourteen is
// almost certainly narrower than intended, but it is kept as-is for
// compatibility with existing placements.
const horizonStride = 7

// Validate checks a plan request for malformed input: out-of-range days,
// unparseable or misaligned clock strings, inverted windows, and
// non-positive durations. The engine either returns a clean event list or
// a validation error, never a mix.
func Validate(req model.PlanRequest) error {
	for _, w := range req.Availability {
		if w.Day < 0 || w.Day > 6 {
			return fmt.Errorf("availability window %s: day %d out of range", w.ID, w.Day)
		}
		start, err := timegrid.TimeToMinutes(w.Start)
		if err != nil {
			return fmt.Errorf("availability window %s: %w", w.ID, err)
		}
		end, err := timegrid.TimeToMinutes(w.End)
		if err != nil {
			return fmt.Errorf("availability window %s: %w", w.ID, err)
		}
		if start >= end {
			return fmt.Errorf("availability window %s: start %s not before end %s", w.ID, w.Start, w.End)
		}
		// A window may end exactly at midnight, never start at or past it.
		if start < 0 || start >= timegrid.MinutesPerDay || end > timegrid.MinutesPerDay {
			return fmt.Errorf("availability window %s: %s-%s outside the day", w.ID, w.Start, w.End)
		}
		if !timegrid.Aligned(start) || !timegrid.Aligned(end) {
			return fmt.Errorf("availability window %s: %s-%s not on the 30-minute grid", w.ID, w.Start, w.End)
		}
	}
	for _, g := range req.Goals {
		if g.DurationMins <= 0 {
			return fmt.Errorf("goal %s: duration %d must be positive", g.ID, g.DurationMins)
		}
	}
	return nil
}

// Plan places each goal, in declaration order, onto the first viable slot
// of its strided candidate-day sequence within the horizon. Goals with no
// resolvable participants or no viable slot anywhere produce no event;
// the caller observes this only as fewer plans than goals.
func Plan(req model.PlanRequest, horizon []time.Time) ([]model.PlannedEvent, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	memberIDs := make(map[string]struct{}, len(req.Members))
	for _, m := range req.Members {
		memberIDs[m.ID] = struct{}{}
	}

	var plans []model.PlannedEvent
	for goalIndex, goal := range req.Goals {
		if !hasResolvableParticipant(goal, memberIDs) {
			continue
		}
		content := Content(req.Vibe, goal.Type)

		for offset := goalIndex * 2; offset < len(horizon); offset += horizonStride {
			date := horizon[offset]
			day := int(date.Weekday())

			slots := FindCommonSlots(day, goal.Participants, req.Availability, goal.DurationMins)
			if len(slots) == 0 {
				continue
			}

			event, err := buildEvent(goal, date, slots[0], content)
			if err != nil {
				return nil, err
			}
			plans = append(plans, event)
			break
		}
	}
	return plans, nil
}

// Alternatives returns the next viable placement for a single goal whose
// start is strictly after the cursor, walking the same strided candidate
// sequence Plan uses but considering every viable slot rather than only
// the first. A zero cursor returns the first viable placement. The result
// has at most one event; it is empty when the alternatives are exhausted
// or the goal is unknown.
func Alternatives(req model.PlanRequest, horizon []time.Time, goalID string, cursor time.Time) ([]model.PlannedEvent, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	goalIndex := -1
	var goal model.Goal
	for i, g := range req.Goals {
		if g.ID == goalID {
			goalIndex, goal = i, g
			break
		}
	}
	if goalIndex < 0 {
		return nil, nil
	}

	memberIDs := make(map[string]struct{}, len(req.Members))
	for _, m := range req.Members {
		memberIDs[m.ID] = struct{}{}
	}
	if !hasResolvableParticipant(goal, memberIDs) {
		return nil, nil
	}
	content := Content(req.Vibe, goal.Type)

	for offset := goalIndex * 2; offset < len(horizon); offset += horizonStride {
		date := horizon[offset]
		day := int(date.Weekday())

		for _, slot := range FindCommonSlots(day, goal.Participants, req.Availability, goal.DurationMins) {
			event, err := buildEvent(goal, date, slot, content)
			if err != nil {
				return nil, err
			}
			if !event.Start.After(cursor) {
				continue
			}
			return []model.PlannedEvent{event}, nil
		}
	}
	return nil, nil
}

func hasResolvableParticipant(goal model.Goal, memberIDs map[string]struct{}) bool {
	for _, id := range goal.Participants {
		if _, ok := memberIDs[id]; ok {
			return true
		}
	}
	return false
}

func buildEvent(goal model.Goal, date time.Time, slot string, content EventContent) (model.PlannedEvent, error) {
	start, err := timegrid.Combine(date, slot)
	if err != nil {
		return model.PlannedEvent{}, err
	}
	return model.PlannedEvent{
		GoalID:    goal.ID,
		Start:     start,
		End:       start.Add(time.Duration(goal.DurationMins) * time.Minute),
		MemberIDs: append([]string(nil), goal.Participants...),
		Title:     content.Title,
		Notes:     content.Notes,
		Location:  goal.LocationHint,
	}, nil
}
