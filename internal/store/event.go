package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/novara/internal/model"
)

// EventStore holds booked events: the confirmed calendar entries an apply
// pass produces from planned events. At most one booked event exists per
// goal; re-applying a plan for the same goal updates it in place.
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// Upsert books a planned event. It reports created=true when the goal
// had no booked event yet, false when an existing booking was updated.
func (s *EventStore) Upsert(plan model.PlannedEvent) (*model.BookedEvent, bool, error) {
	memberIDs, err := json.Marshal(plan.MemberIDs)
	if err != nil {
		return nil, false, fmt.Errorf("marshal member ids: %w", err)
	}

	existing, err := s.GetByGoal(plan.GoalID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	if existing != nil {
		_, err = s.db.Exec(
			`UPDATE events
			 SET start_time = ?, end_time = ?, member_ids = ?, title = ?, notes = ?, location = ?, updated_at = ?
			 WHERE id = ?`,
			plan.Start.UTC(), plan.End.UTC(), string(memberIDs), plan.Title, plan.Notes, plan.Location, now, existing.ID,
		)
		if err != nil {
			return nil, false, fmt.Errorf("update event: %w", err)
		}
		updated, err := s.GetByGoal(plan.GoalID)
		return updated, false, err
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO events (id, goal_id, start_time, end_time, member_ids, title, notes, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, plan.GoalID, plan.Start.UTC(), plan.End.UTC(), string(memberIDs), plan.Title, plan.Notes, plan.Location, now, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert event: %w", err)
	}

	created, err := s.GetByGoal(plan.GoalID)
	return created, true, err
}

func (s *EventStore) GetByGoal(goalID string) (*model.BookedEvent, error) {
	row := s.db.QueryRow(
		`SELECT id, goal_id, start_time, end_time, member_ids, title, notes, location, created_at, updated_at
		 FROM events WHERE goal_id = ?`,
		goalID,
	)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return e, nil
}

func (s *EventStore) List() ([]model.BookedEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, goal_id, start_time, end_time, member_ids, title, notes, location, created_at, updated_at
		 FROM events ORDER BY start_time, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.BookedEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*model.BookedEvent, error) {
	var e model.BookedEvent
	var memberIDs string
	err := row.Scan(&e.ID, &e.GoalID, &e.Start, &e.End, &memberIDs, &e.Title, &e.Notes, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(memberIDs), &e.MemberIDs); err != nil {
		return nil, fmt.Errorf("unmarshal member ids: %w", err)
	}
	return &e, nil
}
