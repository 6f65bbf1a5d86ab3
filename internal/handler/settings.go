package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
	"github.com/dukerupert/novara/internal/websocket"
)

type SettingsHandler struct {
	store   *store.SettingsStore
	planner *planning.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewSettingsHandler(s *store.SettingsStore, planner *planning.Service, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, planner: planner, hub: hub, logger: logger}
}

func (h *SettingsHandler) GetVibe(w http.ResponseWriter, r *http.Request) {
	vibe, err := h.store.Vibe()
	if err != nil {
		h.logger.Error("get vibe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get vibe")
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Vibe{"vibe": vibe})
}

// UpdateVibe changes the workspace tone. Event titles and notes derive
// from the vibe, so a change triggers a full replan.
func (h *SettingsHandler) UpdateVibe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Vibe model.Vibe `json:"vibe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !model.ValidVibe(req.Vibe) {
		writeError(w, http.StatusBadRequest, "vibe must be one of cozy, hype, professional")
		return
	}

	if err := h.store.SetVibe(req.Vibe); err != nil {
		h.logger.Error("set vibe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set vibe")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastChange("settings", "updated", "vibe")
	}
	if h.planner != nil {
		h.planner.Refresh()
	}
	writeJSON(w, http.StatusOK, map[string]model.Vibe{"vibe": req.Vibe})
}
