// Package planning coordinates re-planning around the pure placement
// engine. Edits to members, availability, goals, or the vibe trigger a
// debounced refresh; each pass gets a monotonically increasing generation
// number and its result is applied only if no newer pass has landed
// first. That gives deterministic last-write-wins semantics without a
// cancellation primitive.
package planning

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/novara/internal/model"
	"github.com/dukerupert/novara/internal/planner"
	"github.com/dukerupert/novara/internal/timegrid"
	"github.com/dukerupert/novara/internal/websocket"
)

// horizonWeeks bounds the look-ahead: 14 Monday-anchored candidate dates.
const horizonWeeks = 2

// Loader produces a point-in-time snapshot of the workspace state the
// engine plans over.
type Loader func() (model.PlanRequest, error)

type Service struct {
	loader   Loader
	hub      *websocket.Hub
	logger   *slog.Logger
	debounce time.Duration
	now      func() time.Time

	mu         sync.Mutex
	timer      *time.Timer
	nextGen    uint64
	appliedGen uint64
	plans      []model.PlannedEvent
}

func NewService(loader Loader, hub *websocket.Hub, debounce time.Duration, logger *slog.Logger) *Service {
	return &Service{
		loader:   loader,
		hub:      hub,
		logger:   logger,
		debounce: debounce,
		now:      time.Now,
	}
}

// Plans returns the latest authoritative plan set.
func (s *Service) Plans() []model.PlannedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PlannedEvent(nil), s.plans...)
}

// Horizon returns the candidate dates the next pass will search.
func (s *Service) Horizon() []time.Time {
	return timegrid.WeekDates(s.now(), horizonWeeks)
}

// Refresh schedules a planning pass after the debounce delay. Rapid
// successive calls collapse into one pass.
func (s *Service) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		gen := s.claimGeneration()
		s.mu.Unlock()
		s.run(gen)
	})
}

// RunOnce executes a planning pass synchronously. Used at startup and
// wherever the caller needs the refreshed result immediately.
func (s *Service) RunOnce() error {
	s.mu.Lock()
	gen := s.claimGeneration()
	s.mu.Unlock()
	return s.run(gen)
}

// claimGeneration must be called with the mutex held.
func (s *Service) claimGeneration() uint64 {
	s.nextGen++
	return s.nextGen
}

func (s *Service) run(gen uint64) error {
	req, err := s.loader()
	if err != nil {
		s.logger.Error("load planning snapshot", "error", err)
		return err
	}

	horizon := timegrid.WeekDates(s.now(), horizonWeeks)
	plans, err := planner.Plan(req, horizon)
	if err != nil {
		s.logger.Warn("planning pass rejected", "error", err)
		return err
	}

	s.mu.Lock()
	if gen <= s.appliedGen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale planning pass", "generation", gen, "applied", s.appliedGen)
		return nil
	}
	s.appliedGen = gen
	s.plans = plans
	s.mu.Unlock()

	s.logger.Info("planning pass applied", "generation", gen, "goals", len(req.Goals), "plans", len(plans))
	s.hub.BroadcastPlans(len(plans))
	return nil
}
