package store

import (
	"testing"

	"github.com/dukerupert/novara/internal/availability"
)

func createTestMember(t *testing.T, s *MemberStore, name string) string {
	t.Helper()
	m, err := s.Create(name, name+"@example.com", "UTC", "", "")
	if err != nil {
		t.Fatalf("create member %s: %v", name, err)
	}
	return m.ID
}

func TestAvailabilityCreateAndListDay(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberStore(db)
	s := NewAvailabilityStore(db)
	aliceID := createTestMember(t, members, "Alice")

	if _, err := s.Create(aliceID, 1, "14:00", "15:00", "home"); err != nil {
		t.Fatalf("create window: %v", err)
	}
	if _, err := s.Create(aliceID, 1, "09:00", "10:00", "either"); err != nil {
		t.Fatalf("create window: %v", err)
	}

	windows, err := s.ListDay(aliceID, 1)
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	// Ordered by start time
	if windows[0].Start != "09:00" || windows[1].Start != "14:00" {
		t.Errorf("windows out of order: %v", windows)
	}
	if windows[1].LocationPref != "home" {
		t.Errorf("location pref = %q, want home", windows[1].LocationPref)
	}
}

func TestAvailabilityReplaceDay(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberStore(db)
	s := NewAvailabilityStore(db)
	aliceID := createTestMember(t, members, "Alice")

	if _, err := s.Create(aliceID, 2, "09:00", "09:30", ""); err != nil {
		t.Fatalf("create window: %v", err)
	}
	if _, err := s.Create(aliceID, 3, "09:00", "09:30", ""); err != nil {
		t.Fatalf("create window: %v", err)
	}

	replaced, err := s.ReplaceDay(aliceID, 2, []availability.Window{
		{Start: "10:00", End: "12:00"},
		{Start: "14:00", End: "14:30"},
	})
	if err != nil {
		t.Fatalf("replace day: %v", err)
	}
	if len(replaced) != 2 {
		t.Fatalf("got %d windows, want 2", len(replaced))
	}
	if replaced[0].Start != "10:00" || replaced[0].End != "12:00" {
		t.Errorf("replaced[0] = %+v", replaced[0])
	}

	// The other day is untouched
	other, err := s.ListDay(aliceID, 3)
	if err != nil {
		t.Fatalf("list day 3: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("day 3 should keep its window, got %d", len(other))
	}
}

func TestAvailabilityReplaceDayWithEmptySetClears(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberStore(db)
	s := NewAvailabilityStore(db)
	aliceID := createTestMember(t, members, "Alice")

	if _, err := s.Create(aliceID, 4, "09:00", "12:00", ""); err != nil {
		t.Fatalf("create window: %v", err)
	}

	cleared, err := s.ReplaceDay(aliceID, 4, nil)
	if err != nil {
		t.Fatalf("replace day: %v", err)
	}
	if len(cleared) != 0 {
		t.Errorf("day should be cleared, got %v", cleared)
	}
}

func TestAvailabilityListAcrossMembers(t *testing.T) {
	db := newTestDB(t)
	members := NewMemberStore(db)
	s := NewAvailabilityStore(db)
	aliceID := createTestMember(t, members, "Alice")
	bobID := createTestMember(t, members, "Bob")

	if _, err := s.Create(aliceID, 1, "09:00", "10:00", ""); err != nil {
		t.Fatalf("create window: %v", err)
	}
	if _, err := s.Create(bobID, 5, "18:00", "20:00", ""); err != nil {
		t.Fatalf("create window: %v", err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d windows, want 2", len(all))
	}
}
