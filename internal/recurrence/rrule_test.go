package recurrence

import (
	"testing"
	"time"
)

func TestParseFreqOnly(t *testing.T) {
	tests := []struct {
		input string
		freq  Freq
	}{
		{"FREQ=DAILY", Daily},
		{"FREQ=WEEKLY", Weekly},
		{"FREQ=MONTHLY", Monthly},
		{"FREQ=YEARLY", Yearly},
	}

	for _, tt := range tests {
		r, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if r.Freq != tt.freq {
			t.Errorf("Parse(%q).Freq = %d, want %d", tt.input, r.Freq, tt.freq)
		}
		if r.Interval != 1 {
			t.Errorf("Parse(%q).Interval = %d, want 1", tt.input, r.Interval)
		}
	}
}

func TestParseWeeklyByDay(t *testing.T) {
	r, err := Parse("FREQ=WEEKLY;BYDAY=MO,FR;INTERVAL=2")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Interval != 2 {
		t.Errorf("Interval = %d, want 2", r.Interval)
	}
	want := []time.Weekday{time.Monday, time.Friday}
	if len(r.ByDay) != len(want) {
		t.Fatalf("ByDay len = %d, want %d", len(r.ByDay), len(want))
	}
	for i, d := range r.ByDay {
		if d != want[i] {
			t.Errorf("ByDay[%d] = %v, want %v", i, d, want[i])
		}
	}
}

func TestParseUntil(t *testing.T) {
	r, err := Parse("FREQ=WEEKLY;UNTIL=20260601T000000Z")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Until == nil {
		t.Fatal("Until should not be nil")
	}
	want := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if !r.Until.Equal(want) {
		t.Errorf("Until = %v, want %v", r.Until, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"BYDAY=MO", // no FREQ
		"FREQ=HOURLY",
		"FREQ=WEEKLY;INTERVAL=0",
		"FREQ=WEEKLY;BYDAY=XX",
		"FREQ=DAILY;COUNT=0",
		"FREQ=DAILY;UNKNOWN=1",
	}

	for _, input := range tests {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should error", input)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{
		"FREQ=WEEKLY",
		"FREQ=WEEKLY;INTERVAL=2;BYDAY=FR",
		"FREQ=DAILY;COUNT=10",
		"FREQ=MONTHLY;UNTIL=20261231T000000Z",
	}

	for _, input := range tests {
		r, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", input, err)
			continue
		}
		if got := r.String(); got != input {
			t.Errorf("String() = %q, want %q", got, input)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"FREQ=DAILY", "Daily"},
		{"FREQ=WEEKLY", "Weekly"},
		{"FREQ=WEEKLY;INTERVAL=2;BYDAY=FR", "Every other week on Fri"},
		{"FREQ=WEEKLY;BYDAY=MO,WE", "Weekly on Mon, Wed"},
		{"FREQ=WEEKLY;INTERVAL=3", "Every 3 weeks"},
		{"FREQ=MONTHLY", "Monthly"},
		{"FREQ=DAILY;COUNT=5", "Daily, 5 times"},
		{"FREQ=WEEKLY;UNTIL=20260601T000000Z", "Weekly, until Jun 1, 2026"},
	}

	for _, tt := range tests {
		r, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got := r.Describe(); got != tt.want {
			t.Errorf("Describe(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHumanizeFallsBackToRawString(t *testing.T) {
	raw := "FREQ=LUNAR;PHASE=FULL"
	if got := Humanize(raw); got != raw {
		t.Errorf("Humanize(%q) = %q, want raw string back", raw, got)
	}
	if got := Humanize(""); got != "" {
		t.Errorf("Humanize(\"\") = %q, want empty", got)
	}
	if got := Humanize("FREQ=WEEKLY;BYDAY=FR"); got != "Weekly on Fri" {
		t.Errorf("Humanize = %q, want %q", got, "Weekly on Fri")
	}
}
