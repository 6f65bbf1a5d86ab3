package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/novara/internal/model"
)

const vibeKey = "vibe"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Vibe returns the workspace's tone selector, defaulting to cozy when
// unset.
func (s *SettingsStore) Vibe() (model.Vibe, error) {
	value, err := s.Get(vibeKey)
	if err != nil {
		return "", err
	}
	if value == "" {
		return model.VibeCozy, nil
	}
	return model.Vibe(value), nil
}

func (s *SettingsStore) SetVibe(vibe model.Vibe) error {
	return s.Set(vibeKey, string(vibe))
}
