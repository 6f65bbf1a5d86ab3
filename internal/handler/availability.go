package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/novara/internal/availability"
	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
	"github.com/dukerupert/novara/internal/timegrid"
	"github.com/dukerupert/novara/internal/websocket"
)

type AvailabilityHandler struct {
	store   *store.AvailabilityStore
	members *store.MemberStore
	planner *planning.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewAvailabilityHandler(s *store.AvailabilityStore, members *store.MemberStore, planner *planning.Service, hub *websocket.Hub, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{store: s, members: members, planner: planner, hub: hub, logger: logger}
}

func (h *AvailabilityHandler) changed(action, memberID string) {
	if h.hub != nil {
		h.hub.BroadcastChange("availability", action, memberID)
	}
	if h.planner != nil {
		h.planner.Refresh()
	}
}

// memberOr404 loads the member from the path's {id} segment, writing a
// 404 and returning nil when it does not exist.
func (h *AvailabilityHandler) memberOr404(w http.ResponseWriter, r *http.Request) *model.Member {
	member, err := h.members.GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return nil
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return nil
	}
	return member
}

func parseDayParam(r *http.Request) (int, bool) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil || day < 0 || day > 6 {
		return 0, false
	}
	return day, true
}

// validSlot rejects anything that is not a grid-aligned slot start
// within the day, so malformed values never reach the store and later
// fail every planning pass.
func validSlot(slot string) bool {
	mins, err := timegrid.TimeToMinutes(slot)
	return err == nil && timegrid.ValidSlot(mins)
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		windows []model.AvailabilityWindow
		err     error
	)
	if memberID := r.URL.Query().Get("member_id"); memberID != "" {
		windows, err = h.store.ListByMember(memberID)
	} else {
		windows, err = h.store.List()
	}
	if err != nil {
		h.logger.Error("list availability", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list availability")
		return
	}
	if windows == nil {
		windows = []model.AvailabilityWindow{}
	}
	writeJSON(w, http.StatusOK, windows)
}

// Toggle flips a single 30-minute slot on one of a member's weekdays and
// stores the re-coalesced window set for that day.
func (h *AvailabilityHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	member := h.memberOr404(w, r)
	if member == nil {
		return
	}

	var req struct {
		Day       int    `json:"day"`
		Slot      string `json:"slot"`
		Available bool   `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Day < 0 || req.Day > 6 {
		writeError(w, http.StatusBadRequest, "day must be 0-6")
		return
	}
	if !validSlot(req.Slot) {
		writeError(w, http.StatusBadRequest, "slot must be an HH:MM time on the 30-minute grid")
		return
	}

	current, err := h.dayWindows(member.ID, req.Day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load day")
		return
	}

	merged, err := availability.Toggle(current, req.Slot, req.Available)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.store.ReplaceDay(member.ID, req.Day, merged)
	if err != nil {
		h.logger.Error("replace day", "member", member.ID, "day", req.Day, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save day")
		return
	}
	if saved == nil {
		saved = []model.AvailabilityWindow{}
	}

	h.changed("updated", member.ID)
	writeJSON(w, http.StatusOK, saved)
}

// CopyDay returns the flattened slot snapshot of one member-day, suitable
// for pasting onto another day.
func (h *AvailabilityHandler) CopyDay(w http.ResponseWriter, r *http.Request) {
	member := h.memberOr404(w, r)
	if member == nil {
		return
	}
	day, ok := parseDayParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "day must be 0-6")
		return
	}

	windows, err := h.dayWindows(member.ID, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load day")
		return
	}

	slots, err := availability.ToSlots(windows)
	if err != nil {
		h.logger.Error("flatten day", "member", member.ID, "day", day, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to flatten day")
		return
	}
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"slots": slots})
}

// PasteDay replaces one member-day with the coalesced form of a slot
// snapshot. An empty snapshot clears the day.
func (h *AvailabilityHandler) PasteDay(w http.ResponseWriter, r *http.Request) {
	member := h.memberOr404(w, r)
	if member == nil {
		return
	}
	day, ok := parseDayParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "day must be 0-6")
		return
	}

	var req struct {
		Slots []string `json:"slots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	for _, slot := range req.Slots {
		if !validSlot(slot) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("slot %q must be an HH:MM time on the 30-minute grid", slot))
			return
		}
	}

	windows, err := availability.Coalesce(req.Slots)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.store.ReplaceDay(member.ID, day, windows)
	if err != nil {
		h.logger.Error("replace day", "member", member.ID, "day", day, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save day")
		return
	}
	if saved == nil {
		saved = []model.AvailabilityWindow{}
	}

	h.changed("updated", member.ID)
	writeJSON(w, http.StatusOK, saved)
}

func (h *AvailabilityHandler) dayWindows(memberID string, day int) ([]availability.Window, error) {
	stored, err := h.store.ListDay(memberID, day)
	if err != nil {
		return nil, err
	}
	windows := make([]availability.Window, len(stored))
	for i, s := range stored {
		windows[i] = availability.Window{Start: s.Start, End: s.End}
	}
	return windows, nil
}
