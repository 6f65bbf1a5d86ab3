// Package server wires the stores, the planning coordinator, and the
// HTTP handlers into one routable application.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/novara/internal/handler"
	"github.com/dukerupert/novara/internal/middleware"
	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planning"
	"github.com/dukerupert/novara/internal/store"
	ws "github.com/dukerupert/novara/internal/websocket"
)

// replanDebounce is how long the coordinator waits after the last edit
// before recomputing plans.
const replanDebounce = 250 * time.Millisecond

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	planner     *planning.Service
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger

	memberH       *handler.MemberHandler
	availabilityH *handler.AvailabilityHandler
	goalH         *handler.GoalHandler
	settingsH     *handler.SettingsHandler
	planH         *handler.PlanHandler
	exportH       *handler.ExportHandler
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	memberStore := store.NewMemberStore(db)
	availabilityStore := store.NewAvailabilityStore(db)
	goalStore := store.NewGoalStore(db)
	eventStore := store.NewEventStore(db)
	settingsStore := store.NewSettingsStore(db)

	loader := snapshotLoader(memberStore, availabilityStore, goalStore, settingsStore)
	planner := planning.NewService(loader, hub, replanDebounce, logger.With("component", "planning"))

	return &Server{
		db:          db,
		hub:         hub,
		planner:     planner,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,

		memberH:       handler.NewMemberHandler(memberStore, planner, hub, logger.With("component", "member")),
		availabilityH: handler.NewAvailabilityHandler(availabilityStore, memberStore, planner, hub, logger.With("component", "availability")),
		goalH:         handler.NewGoalHandler(goalStore, planner, hub, logger.With("component", "goal")),
		settingsH:     handler.NewSettingsHandler(settingsStore, planner, hub, logger.With("component", "settings")),
		planH:         handler.NewPlanHandler(planner, loader, eventStore, hub, logger.With("component", "plan")),
		exportH:       handler.NewExportHandler(planner, memberStore, logger.With("component", "export")),
	}
}

// snapshotLoader builds the point-in-time workspace snapshot each
// planning pass consumes.
func snapshotLoader(members *store.MemberStore, availability *store.AvailabilityStore, goals *store.GoalStore, settings *store.SettingsStore) planning.Loader {
	return func() (model.PlanRequest, error) {
		ms, err := members.List()
		if err != nil {
			return model.PlanRequest{}, err
		}
		windows, err := availability.List()
		if err != nil {
			return model.PlanRequest{}, err
		}
		gs, err := goals.List()
		if err != nil {
			return model.PlanRequest{}, err
		}
		vibe, err := settings.Vibe()
		if err != nil {
			return model.PlanRequest{}, err
		}
		return model.PlanRequest{Members: ms, Availability: windows, Goals: gs, Vibe: vibe}, nil
	}
}

// Planner returns the planning coordinator, so main can run the initial
// pass before serving.
func (s *Server) Planner() *planning.Service {
	return s.planner
}

// RateLimiter returns the limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("GET /api/members/{id}", s.memberH.Get)
	mux.HandleFunc("PUT /api/members/{id}", s.memberH.Update)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)

	mux.HandleFunc("GET /api/availability", s.availabilityH.List)
	mux.HandleFunc("POST /api/members/{id}/availability/toggle", s.availabilityH.Toggle)
	mux.HandleFunc("GET /api/members/{id}/availability/days/{day}", s.availabilityH.CopyDay)
	mux.HandleFunc("PUT /api/members/{id}/availability/days/{day}", s.availabilityH.PasteDay)

	mux.HandleFunc("GET /api/goals", s.goalH.List)
	mux.HandleFunc("POST /api/goals", s.goalH.Create)
	mux.HandleFunc("GET /api/goals/{id}", s.goalH.Get)
	mux.HandleFunc("PUT /api/goals/{id}", s.goalH.Update)
	mux.HandleFunc("DELETE /api/goals/{id}", s.goalH.Delete)

	mux.HandleFunc("GET /api/settings/vibe", s.settingsH.GetVibe)
	mux.HandleFunc("PUT /api/settings/vibe", s.settingsH.UpdateVibe)

	mux.HandleFunc("POST /api/plan", s.planH.Compute)
	mux.HandleFunc("GET /api/plan", s.planH.Shuffle)
	mux.HandleFunc("GET /api/plans", s.planH.Latest)
	mux.HandleFunc("POST /api/apply", s.rateLimitedHandler(s.planH.Apply))
	mux.HandleFunc("GET /api/events", s.planH.Events)

	mux.HandleFunc("GET /api/export.ics", s.exportH.Calendar)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimitedHandler caps booking traffic per client IP.
func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 30, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}
