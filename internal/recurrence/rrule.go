// Package recurrence parses RRULE strings for human display. Goals store
// their recurrence pattern verbatim; this package never expands a rule
// into occurrences, it only prettifies the cadence for the UI.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Freq int

const (
	Daily Freq = iota
	Weekly
	Monthly
	Yearly
)

var freqNames = map[Freq]string{
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
	Yearly:  "YEARLY",
}

var freqFromName = map[string]Freq{
	"DAILY":   Daily,
	"WEEKLY":  Weekly,
	"MONTHLY": Monthly,
	"YEARLY":  Yearly,
}

var dayFromAbbrev = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Rule is a parsed recurrence pattern.
type Rule struct {
	Freq     Freq
	Interval int            // default 1; 2 = every other period
	ByDay    []time.Weekday // for WEEKLY: which days
	Count    int            // max occurrences (0 = unlimited)
	Until    *time.Time     // stop after this date (nil = no limit)
}

// Parse parses an RRULE string like "FREQ=WEEKLY;BYDAY=FR;INTERVAL=2".
func Parse(rule string) (Rule, error) {
	if rule == "" {
		return Rule{}, fmt.Errorf("empty rule")
	}

	r := Rule{Interval: 1}
	var hasFreq bool

	for _, part := range strings.Split(rule, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Rule{}, fmt.Errorf("invalid rule part: %q", part)
		}
		key, val := kv[0], kv[1]

		switch key {
		case "FREQ":
			f, ok := freqFromName[val]
			if !ok {
				return Rule{}, fmt.Errorf("unknown frequency: %q", val)
			}
			r.Freq = f
			hasFreq = true

		case "INTERVAL":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Rule{}, fmt.Errorf("invalid interval: %q", val)
			}
			r.Interval = n

		case "BYDAY":
			for _, d := range strings.Split(val, ",") {
				wd, ok := dayFromAbbrev[strings.TrimSpace(d)]
				if !ok {
					return Rule{}, fmt.Errorf("unknown day: %q", d)
				}
				r.ByDay = append(r.ByDay, wd)
			}

		case "COUNT":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Rule{}, fmt.Errorf("invalid count: %q", val)
			}
			r.Count = n

		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", val)
			if err != nil {
				t, err = time.Parse("20060102", val)
				if err != nil {
					return Rule{}, fmt.Errorf("invalid UNTIL: %q", val)
				}
			}
			r.Until = &t

		default:
			return Rule{}, fmt.Errorf("unsupported rule key: %q", key)
		}
	}

	if !hasFreq {
		return Rule{}, fmt.Errorf("FREQ is required")
	}

	return r, nil
}

// String serializes the rule back to an RRULE string.
func (r Rule) String() string {
	parts := []string{"FREQ=" + freqNames[r.Freq]}

	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}

	if len(r.ByDay) > 0 {
		var days []string
		for _, d := range r.ByDay {
			days = append(days, dayAbbrev[d])
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}

	if r.Count > 0 {
		parts = append(parts, fmt.Sprintf("COUNT=%d", r.Count))
	}

	if r.Until != nil {
		parts = append(parts, "UNTIL="+r.Until.Format("20060102T150405Z"))
	}

	return strings.Join(parts, ";")
}

// Describe renders the rule as a human-readable cadence.
func (r Rule) Describe() string {
	var b strings.Builder

	switch r.Freq {
	case Daily:
		if r.Interval > 1 {
			fmt.Fprintf(&b, "Every %d days", r.Interval)
		} else {
			b.WriteString("Daily")
		}
	case Weekly:
		switch {
		case r.Interval == 2:
			b.WriteString("Every other week")
		case r.Interval > 2:
			fmt.Fprintf(&b, "Every %d weeks", r.Interval)
		default:
			b.WriteString("Weekly")
		}
		if len(r.ByDay) > 0 {
			var names []string
			for _, d := range r.ByDay {
				names = append(names, d.String()[:3])
			}
			b.WriteString(" on " + strings.Join(names, ", "))
		}
	case Monthly:
		if r.Interval > 1 {
			fmt.Fprintf(&b, "Every %d months", r.Interval)
		} else {
			b.WriteString("Monthly")
		}
	case Yearly:
		if r.Interval > 1 {
			fmt.Fprintf(&b, "Every %d years", r.Interval)
		} else {
			b.WriteString("Yearly")
		}
	}

	if r.Count > 0 {
		fmt.Fprintf(&b, ", %d times", r.Count)
	}
	if r.Until != nil {
		fmt.Fprintf(&b, ", until %s", r.Until.Format("Jan 2, 2006"))
	}

	return b.String()
}

// Humanize prettifies a stored RRULE string. Rules that fail to parse are
// returned verbatim so an exotic pattern still displays as something.
func Humanize(rrule string) string {
	if rrule == "" {
		return ""
	}
	r, err := Parse(rrule)
	if err != nil {
		return rrule
	}
	return r.Describe()
}
