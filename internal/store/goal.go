package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/novara/internal/model"
)

type GoalStore struct {
	db *sql.DB
}

func NewGoalStore(db *sql.DB) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) Create(goalType model.GoalType, participants []string, durationMins int, rrule, locationHint string, priority int) (*model.Goal, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create goal: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO goals (id, type, duration_mins, rrule, location_hint, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(goalType), durationMins, rrule, locationHint, priority, now, now,
	); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	if err := replaceParticipants(tx, id, participants); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create goal: %w", err)
	}

	return s.GetByID(id)
}

func (s *GoalStore) GetByID(id string) (*model.Goal, error) {
	var g model.Goal
	err := s.db.QueryRow(
		`SELECT id, type, duration_mins, rrule, location_hint, priority, created_at, updated_at
		 FROM goals WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Type, &g.DurationMins, &g.RRule, &g.LocationHint, &g.Priority, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query goal: %w", err)
	}

	g.Participants, err = s.participants(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns goals in declaration (creation) order, the order the
// placement engine iterates them in.
func (s *GoalStore) List() ([]model.Goal, error) {
	rows, err := s.db.Query(
		`SELECT id, type, duration_mins, rrule, location_hint, priority, created_at, updated_at
		 FROM goals ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Type, &g.DurationMins, &g.RRule, &g.LocationHint, &g.Priority, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range goals {
		goals[i].Participants, err = s.participants(goals[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return goals, nil
}

func (s *GoalStore) Update(id string, goalType model.GoalType, participants []string, durationMins int, rrule, locationHint string, priority int) (*model.Goal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin update goal: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE goals
		 SET type = ?, duration_mins = ?, rrule = ?, location_hint = ?, priority = ?, updated_at = ?
		 WHERE id = ?`,
		string(goalType), durationMins, rrule, locationHint, priority, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM goal_participants WHERE goal_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear goal participants: %w", err)
	}
	if err := replaceParticipants(tx, id, participants); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update goal: %w", err)
	}

	return s.GetByID(id)
}

// Delete removes a goal. Booked events tied to it cascade away.
func (s *GoalStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *GoalStore) participants(goalID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT member_id FROM goal_participants WHERE goal_id = ? ORDER BY position`,
		goalID,
	)
	if err != nil {
		return nil, fmt.Errorf("query goal participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan goal participant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceParticipants(tx *sql.Tx, goalID string, participants []string) error {
	seen := make(map[string]struct{}, len(participants))
	position := 0
	for _, memberID := range participants {
		if _, ok := seen[memberID]; ok {
			continue
		}
		seen[memberID] = struct{}{}
		if _, err := tx.Exec(
			`INSERT INTO goal_participants (goal_id, member_id, position) VALUES (?, ?, ?)`,
			goalID, memberID, position,
		); err != nil {
			return fmt.Errorf("insert goal participant: %w", err)
		}
		position++
	}
	return nil
}
