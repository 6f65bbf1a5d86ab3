package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planner"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
	"github.com/dukerupert/novara/internal/websocket"
)

type PlanHandler struct {
	planner *planning.Service
	loader  planning.Loader
	events  *store.EventStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewPlanHandler(svc *planning.Service, loader planning.Loader, events *store.EventStore, hub *websocket.Hub, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{planner: svc, loader: loader, events: events, hub: hub, logger: logger}
}

// Compute runs the placement engine statelessly over the request body.
// Nothing is persisted and no broadcast fires; this is the pure
// snapshot-in, plans-out invocation.
func (h *PlanHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req model.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Vibe == "" {
		req.Vibe = model.VibeCozy
	}
	if !model.ValidVibe(req.Vibe) {
		writeError(w, http.StatusBadRequest, "vibe must be one of cozy, hype, professional")
		return
	}

	plans, err := planner.Plan(req, h.planner.Horizon())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if plans == nil {
		plans = []model.PlannedEvent{}
	}
	writeJSON(w, http.StatusOK, model.PlanResponse{Plans: plans})
}

// Shuffle returns the next viable placement for one goal after the
// cursor, reading the current workspace state. An empty plan list means
// the alternatives are exhausted.
func (h *PlanHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("goal_id")
	if goalID == "" {
		writeError(w, http.StatusBadRequest, "goal_id is required")
		return
	}

	var cursor time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		var err error
		cursor, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "cursor must be an RFC 3339 timestamp")
			return
		}
	}

	req, err := h.loader()
	if err != nil {
		h.logger.Error("load workspace snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load workspace")
		return
	}

	plans, err := planner.Alternatives(req, h.planner.Horizon(), goalID, cursor)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if plans == nil {
		plans = []model.PlannedEvent{}
	}
	writeJSON(w, http.StatusOK, model.PlanResponse{Plans: plans})
}

// Latest returns the coordinator's current authoritative plan set.
func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	plans := h.planner.Plans()
	if plans == nil {
		plans = []model.PlannedEvent{}
	}
	writeJSON(w, http.StatusOK, model.PlanResponse{Plans: plans})
}

// Apply books planned events as confirmed calendar entries. Bookings are
// keyed by goal: the first apply for a goal creates its event, later
// applies move the existing event instead of stacking new ones.
func (h *PlanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	for _, plan := range req.Plans {
		if plan.GoalID == "" {
			writeError(w, http.StatusBadRequest, "every plan needs a goalId")
			return
		}
		if !plan.Start.Before(plan.End) {
			writeError(w, http.StatusBadRequest, "every plan needs start before end")
			return
		}
	}

	resp := model.ApplyResponse{Created: []model.ApplyResult{}, Updated: []model.ApplyResult{}}
	for _, plan := range req.Plans {
		event, created, err := h.events.Upsert(plan)
		if err != nil {
			h.logger.Error("book event", "goal", plan.GoalID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to book event")
			return
		}
		result := model.ApplyResult{GoalID: plan.GoalID, EventID: event.ID}
		if created {
			resp.Created = append(resp.Created, result)
		} else {
			resp.Updated = append(resp.Updated, result)
		}
	}

	if h.hub != nil && len(req.Plans) > 0 {
		h.hub.Broadcast(websocket.NewMessage("events", "applied", "", map[string]any{
			"created": len(resp.Created),
			"updated": len(resp.Updated),
		}))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Events lists the booked events apply passes have produced, in start
// order.
func (h *PlanHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List()
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.BookedEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
