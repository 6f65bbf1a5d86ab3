package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
	"github.com/dukerupert/novara/internal/websocket"
)

type MemberHandler struct {
	store   *store.MemberStore
	planner *planning.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewMemberHandler(s *store.MemberStore, planner *planning.Service, hub *websocket.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{store: s, planner: planner, hub: hub, logger: logger}
}

func (h *MemberHandler) changed(action, id string) {
	if h.hub != nil {
		h.hub.BroadcastChange("member", action, id)
	}
	if h.planner != nil {
		h.planner.Refresh()
	}
}

type memberRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"tz"`
	Home     string `json:"home"`
	Office   string `json:"office"`
}

func (r *memberRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return "name is required"
	}
	if r.Email == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "email is not a valid address"
	}
	if r.Timezone == "" {
		r.Timezone = "UTC"
	}
	return ""
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.List()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.store.GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	member, err := h.store.Create(req.Name, req.Email, req.Timezone, req.Home, req.Office)
	if err != nil {
		h.logger.Error("create member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create member")
		return
	}

	h.changed("created", member.ID)
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	member, err := h.store.Update(id, req.Name, req.Email, req.Timezone, req.Home, req.Office)
	if err != nil {
		h.logger.Error("update member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	h.changed("updated", member.ID)
	writeJSON(w, http.StatusOK, member)
}

// Delete removes a member. Availability windows cascade away and the
// member disappears from goal participant lists; goals left without any
// resolvable participant are simply skipped on the next planning pass.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	h.changed("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
