package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/recurrence"
	"github.com/dukerupert/novara/internal/store"
	"github.com/dukerupert/novara/internal/websocket"
)

type GoalHandler struct {
	store   *store.GoalStore
	planner *planning.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewGoalHandler(s *store.GoalStore, planner *planning.Service, hub *websocket.Hub, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{store: s, planner: planner, hub: hub, logger: logger}
}

func (h *GoalHandler) changed(action, id string) {
	if h.hub != nil {
		h.hub.BroadcastChange("goal", action, id)
	}
	if h.planner != nil {
		h.planner.Refresh()
	}
}

// goalResponse decorates a goal with the humanized form of its RRULE.
type goalResponse struct {
	model.Goal
	RRuleText string `json:"rrule_text"`
}

func toGoalResponse(g model.Goal) goalResponse {
	return goalResponse{Goal: g, RRuleText: recurrence.Humanize(g.RRule)}
}

type goalRequest struct {
	Type         model.GoalType `json:"type"`
	Participants []string       `json:"participants"`
	DurationMins int            `json:"durationMins"`
	RRule        string         `json:"rrule"`
	LocationHint string         `json:"locationHint"`
	Priority     int            `json:"priority"`
}

func (r *goalRequest) validate() string {
	if !model.ValidGoalType(r.Type) {
		return "type must be one of date_night, one_on_one, two_friends, run_walk"
	}
	if len(r.Participants) == 0 {
		return "participants are required"
	}
	if r.DurationMins <= 0 {
		return "durationMins must be positive"
	}
	if r.Priority < 0 || r.Priority > 5 {
		return "priority must be 0-5"
	}
	return ""
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.List()
	if err != nil {
		h.logger.Error("list goals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toGoalResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get goal")
		return
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*goal))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	goal, err := h.store.Create(req.Type, req.Participants, req.DurationMins, req.RRule, req.LocationHint, req.Priority)
	if err != nil {
		h.logger.Error("create goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}

	h.changed("created", goal.ID)
	writeJSON(w, http.StatusCreated, toGoalResponse(*goal))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get goal")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	goal, err := h.store.Update(id, req.Type, req.Participants, req.DurationMins, req.RRule, req.LocationHint, req.Priority)
	if err != nil {
		h.logger.Error("update goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}

	h.changed("updated", goal.ID)
	writeJSON(w, http.StatusOK, toGoalResponse(*goal))
}

// Delete removes a goal along with any booked event it produced.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get goal")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	h.changed("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
