package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukerupert/novara/internal/availability"
	"github.com/dukerupert/novara/internal/model"
)

type AvailabilityStore struct {
	db *sql.DB
}

func NewAvailabilityStore(db *sql.DB) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

const windowColumns = `id, member_id, day, start_time, end_time, location_pref`

func scanWindow(row interface{ Scan(...any) error }) (model.AvailabilityWindow, error) {
	var w model.AvailabilityWindow
	err := row.Scan(&w.ID, &w.MemberID, &w.Day, &w.Start, &w.End, &w.LocationPref)
	return w, err
}

func (s *AvailabilityStore) Create(memberID string, day int, start, end string, pref model.LocationPref) (*model.AvailabilityWindow, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO availability_windows (id, member_id, day, start_time, end_time, location_pref)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, memberID, day, start, end, string(pref),
	)
	if err != nil {
		return nil, fmt.Errorf("insert availability window: %w", err)
	}

	var w model.AvailabilityWindow
	w, err = scanWindow(s.db.QueryRow(
		`SELECT `+windowColumns+` FROM availability_windows WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("query availability window: %w", err)
	}
	return &w, nil
}

func (s *AvailabilityStore) List() ([]model.AvailabilityWindow, error) {
	return s.list(`SELECT ` + windowColumns + ` FROM availability_windows ORDER BY member_id, day, start_time`)
}

func (s *AvailabilityStore) ListByMember(memberID string) ([]model.AvailabilityWindow, error) {
	return s.list(
		`SELECT `+windowColumns+` FROM availability_windows WHERE member_id = ? ORDER BY day, start_time`,
		memberID,
	)
}

func (s *AvailabilityStore) ListDay(memberID string, day int) ([]model.AvailabilityWindow, error) {
	return s.list(
		`SELECT `+windowColumns+` FROM availability_windows WHERE member_id = ? AND day = ? ORDER BY start_time`,
		memberID, day,
	)
}

func (s *AvailabilityStore) list(query string, args ...any) ([]model.AvailabilityWindow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query availability windows: %w", err)
	}
	defer rows.Close()

	var windows []model.AvailabilityWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// ReplaceDay atomically rewrites a member-day's windows with the given
// coalesced set. An empty set clears the day.
func (s *AvailabilityStore) ReplaceDay(memberID string, day int, windows []availability.Window) ([]model.AvailabilityWindow, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin replace day: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM availability_windows WHERE member_id = ? AND day = ?`,
		memberID, day,
	); err != nil {
		return nil, fmt.Errorf("clear day windows: %w", err)
	}

	for _, w := range windows {
		if _, err := tx.Exec(
			`INSERT INTO availability_windows (id, member_id, day, start_time, end_time, location_pref)
			 VALUES (?, ?, ?, ?, ?, '')`,
			uuid.NewString(), memberID, day, w.Start, w.End,
		); err != nil {
			return nil, fmt.Errorf("insert day window: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace day: %w", err)
	}

	return s.ListDay(memberID, day)
}

func (s *AvailabilityStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM availability_windows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete availability window: %w", err)
	}
	return nil
}
