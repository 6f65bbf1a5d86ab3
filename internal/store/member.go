package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/novara/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func (s *MemberStore) Create(name, email, timezone, home, office string) (*model.Member, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO members (id, name, email, timezone, home_address, office_address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, email, timezone, home, office, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}

	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id string) (*model.Member, error) {
	var m model.Member
	err := s.db.QueryRow(
		`SELECT id, name, email, timezone, home_address, office_address, created_at, updated_at
		 FROM members WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Timezone, &m.Home, &m.Office, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}

func (s *MemberStore) List() ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT id, name, email, timezone, home_address, office_address, created_at, updated_at
		 FROM members ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Timezone, &m.Home, &m.Office, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *MemberStore) Update(id, name, email, timezone, home, office string) (*model.Member, error) {
	_, err := s.db.Exec(
		`UPDATE members
		 SET name = ?, email = ?, timezone = ?, home_address = ?, office_address = ?, updated_at = ?
		 WHERE id = ?`,
		name, email, timezone, home, office, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a member. Foreign keys cascade: the member's
// availability windows are deleted and the member is stripped from every
// goal's participant list.
func (s *MemberStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
