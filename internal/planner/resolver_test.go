package planner

import (
	"reflect"
	"testing"

	"github.com/dukerupert/novara/internal/model"
)

func window(memberID string, day int, start, end string) model.AvailabilityWindow {
	return model.AvailabilityWindow{
		ID:       memberID + "-" + start,
		MemberID: memberID,
		Day:      day,
		Start:    start,
		End:      end,
	}
}

func TestFindCommonSlotsBothFree(t *testing.T) {
	windows := []model.AvailabilityWindow{
		window("alice", 1, "09:00", "11:00"),
		window("bob", 1, "10:00", "12:00"),
	}

	slots := FindCommonSlots(1, []string{"alice", "bob"}, windows, 60)
	want := []string{"10:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FindCommonSlots = %v, want %v", slots, want)
	}
}

func TestFindCommonSlotsAscendingOrder(t *testing.T) {
	windows := []model.AvailabilityWindow{
		window("alice", 3, "08:00", "12:00"),
	}

	slots := FindCommonSlots(3, []string{"alice"}, windows, 30)
	want := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FindCommonSlots = %v, want %v", slots, want)
	}
}

func TestFindCommonSlotsVeto(t *testing.T) {
	// bob has no windows on Monday at all; alice and carol are wide open
	windows := []model.AvailabilityWindow{
		window("alice", 1, "07:00", "22:00"),
		window("carol", 1, "07:00", "22:00"),
		window("bob", 2, "07:00", "22:00"),
	}

	slots := FindCommonSlots(1, []string{"alice", "bob", "carol"}, windows, 30)
	if len(slots) != 0 {
		t.Errorf("FindCommonSlots = %v, want empty (single absent participant vetoes the day)", slots)
	}
}

func TestFindCommonSlotsSingleWindowContainment(t *testing.T) {
	// The union of bob's two windows spans 90 minutes, but no single
	// window holds a full 60-minute block starting 09:00.
	windows := []model.AvailabilityWindow{
		window("bob", 1, "09:00", "09:30"),
		window("bob", 1, "10:00", "10:30"),
	}

	slots := FindCommonSlots(1, []string{"bob"}, windows, 60)
	if len(slots) != 0 {
		t.Errorf("FindCommonSlots = %v, want empty (containment must be within one window)", slots)
	}
}

func TestFindCommonSlotsDurationMustFitBeforeWindowEnd(t *testing.T) {
	windows := []model.AvailabilityWindow{
		window("alice", 5, "18:00", "20:00"),
	}

	slots := FindCommonSlots(5, []string{"alice"}, windows, 90)
	want := []string{"18:00", "18:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FindCommonSlots = %v, want %v", slots, want)
	}
}

func TestFindCommonSlotsOutsideOperatingHours(t *testing.T) {
	// Availability before 07:00 never yields candidates; the grid is a
	// fixed operating-hours policy, not derived from the data.
	windows := []model.AvailabilityWindow{
		window("alice", 1, "05:00", "07:00"),
	}

	slots := FindCommonSlots(1, []string{"alice"}, windows, 30)
	if len(slots) != 0 {
		t.Errorf("FindCommonSlots = %v, want empty", slots)
	}
}
