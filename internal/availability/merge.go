// Package availability keeps each member-day's availability as a
// canonical coalesced window set. Windows are always derived from slot
// sets, never stored as arbitrary unmerged ranges, so two adjacent edits
// can never leave overlapping or touching windows behind.
package availability

import (
	"fmt"
	"sort"

	"github.com/dukerupert/novara/internal/timegrid"
)

// Window is a contiguous half-open [Start, End) range of 30-minute slots,
// expressed as HH:MM clock strings.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToSlots flattens windows into their individual 30-minute slot start
// times. The result is sorted and deduplicated.
func ToSlots(windows []Window) ([]string, error) {
	seen := make(map[int]struct{})
	var mins []int
	for _, w := range windows {
		start, err := timegrid.TimeToMinutes(w.Start)
		if err != nil {
			return nil, fmt.Errorf("window start: %w", err)
		}
		end, err := timegrid.TimeToMinutes(w.End)
		if err != nil {
			return nil, fmt.Errorf("window end: %w", err)
		}
		for m := start; m < end; m += timegrid.SlotInterval {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				mins = append(mins, m)
			}
		}
	}
	sort.Ints(mins)

	slots := make([]string, len(mins))
	for i, m := range mins {
		slots[i] = timegrid.MinutesToTime(m)
	}
	return slots, nil
}

// Coalesce regroups a slot set into maximal contiguous windows: a new
// window starts whenever the next slot's offset does not equal the
// previous window's end; otherwise the window's end is extended by one
// slot interval. An empty slot set yields no windows.
func Coalesce(slots []string) ([]Window, error) {
	seen := make(map[int]struct{})
	var mins []int
	for _, s := range slots {
		m, err := timegrid.TimeToMinutes(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			mins = append(mins, m)
		}
	}
	sort.Ints(mins)

	var windows []Window
	for i, m := range mins {
		if i > 0 {
			prevEnd, err := timegrid.TimeToMinutes(windows[len(windows)-1].End)
			if err != nil {
				return nil, err
			}
			if m == prevEnd {
				windows[len(windows)-1].End = timegrid.MinutesToTime(m + timegrid.SlotInterval)
				continue
			}
		}
		windows = append(windows, Window{
			Start: timegrid.MinutesToTime(m),
			End:   timegrid.MinutesToTime(m + timegrid.SlotInterval),
		})
	}
	return windows, nil
}

// Toggle adds or removes a single slot from a day's window set and
// returns the re-coalesced windows. Removing an interior slot splits its
// window in two; removing the last slot yields an empty window set.
func Toggle(windows []Window, slot string, makeAvailable bool) ([]Window, error) {
	slots, err := ToSlots(windows)
	if err != nil {
		return nil, err
	}
	if _, err := timegrid.TimeToMinutes(slot); err != nil {
		return nil, err
	}

	if makeAvailable {
		slots = append(slots, slot)
	} else {
		kept := slots[:0]
		for _, s := range slots {
			if s != slot {
				kept = append(kept, s)
			}
		}
		slots = kept
	}

	return Coalesce(slots)
}
