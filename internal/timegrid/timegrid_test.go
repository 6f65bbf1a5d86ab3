package timegrid

import (
	"errors"
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"09:30", 570},
		{"13:45", 825},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := TimeToMinutes(tt.input)
		if err != nil {
			t.Errorf("TimeToMinutes(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTimeToMinutesInvalid(t *testing.T) {
	tests := []string{
		"",
		"0900",
		"09:00:00",
		"nine:thirty",
		"09:xx",
		"half past nine",
	}

	for _, input := range tests {
		_, err := TimeToMinutes(input)
		if err == nil {
			t.Errorf("TimeToMinutes(%q) should error", input)
			continue
		}
		if !errors.Is(err, ErrInvalidClock) {
			t.Errorf("TimeToMinutes(%q) error = %v, want ErrInvalidClock", input, err)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{420, "07:00"},
		{570, "09:30"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := MinutesToTime(tt.input); got != tt.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("09:00", "11:00", 30)
	if err != nil {
		t.Fatalf("GenerateSlots error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, s := range slots {
		if s != want[i] {
			t.Errorf("slots[%d] = %q, want %q", i, s, want[i])
		}
	}
}

func TestGenerateSlotsEmptyWhenStartNotBeforeEnd(t *testing.T) {
	for _, pair := range [][2]string{{"11:00", "11:00"}, {"12:00", "09:00"}} {
		slots, err := GenerateSlots(pair[0], pair[1], 30)
		if err != nil {
			t.Fatalf("GenerateSlots(%q, %q) error: %v", pair[0], pair[1], err)
		}
		if len(slots) != 0 {
			t.Errorf("GenerateSlots(%q, %q) = %v, want empty", pair[0], pair[1], slots)
		}
	}
}

func TestDaySlots(t *testing.T) {
	slots := DaySlots()
	// 07:00 through 21:30 inclusive: 15 hours * 2 slots
	if len(slots) != 30 {
		t.Fatalf("got %d slots, want 30", len(slots))
	}
	if slots[0] != "07:00" {
		t.Errorf("first slot = %q, want 07:00", slots[0])
	}
	if slots[len(slots)-1] != "21:30" {
		t.Errorf("last slot = %q, want 21:30", slots[len(slots)-1])
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		input time.Time
		want  time.Time
	}{
		// A Wednesday
		{time.Date(2026, 2, 4, 15, 30, 0, 0, time.UTC), time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		// A Monday maps to itself
		{time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
		// A Sunday belongs to the week that started the previous Monday
		{time.Date(2026, 2, 8, 23, 0, 0, 0, time.UTC), time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := StartOfWeek(tt.input); !got.Equal(tt.want) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWeekDates(t *testing.T) {
	now := time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC) // Wednesday
	dates := WeekDates(now, 2)

	if len(dates) != 14 {
		t.Fatalf("got %d dates, want 14", len(dates))
	}
	if !dates[0].Equal(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dates[0] = %v, want Monday 2026-02-02", dates[0])
	}
	if dates[0].Weekday() != time.Monday {
		t.Errorf("dates[0] weekday = %v, want Monday", dates[0].Weekday())
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Errorf("dates[%d] = %v, not consecutive after %v", i, dates[i], dates[i-1])
		}
	}
}

func TestCombine(t *testing.T) {
	date := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	got, err := Combine(date, "18:30")
	if err != nil {
		t.Fatalf("Combine error: %v", err)
	}
	want := time.Date(2026, 2, 2, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

func TestAligned(t *testing.T) {
	if !Aligned(570) {
		t.Error("570 (09:30) should be aligned")
	}
	if Aligned(585) {
		t.Error("585 (09:45) should not be aligned")
	}
}

func TestValidSlot(t *testing.T) {
	if !ValidSlot(0) {
		t.Error("00:00 should be a valid slot")
	}
	if !ValidSlot(MinutesPerDay - SlotInterval) {
		t.Error("23:30 should be a valid slot")
	}
	if ValidSlot(585) {
		t.Error("off-grid minutes should not be a valid slot")
	}
	if ValidSlot(MinutesPerDay) {
		t.Error("24:00 is past the last slot start")
	}
	if ValidSlot(25 * 60) {
		t.Error("25:00 parses but is not inside a day")
	}
	if ValidSlot(-SlotInterval) {
		t.Error("negative minutes should not be a valid slot")
	}
}
