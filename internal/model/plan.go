package model

import "time"

type Vibe string

const (
	VibeCozy         Vibe = "cozy"
	VibeHype         Vibe = "hype"
	VibeProfessional Vibe = "professional"
)

// ValidVibe reports whether v is one of the known vibes.
func ValidVibe(v Vibe) bool {
	switch v {
	case VibeCozy, VibeHype, VibeProfessional:
		return true
	}
	return false
}

// PlannedEvent is one concrete placed occurrence of a goal. It carries no
// identity of its own; (GoalID, Start) is unique within a planning pass.
// Plans are fully recomputed on every pass, never merged with prior
// results.
type PlannedEvent struct {
	GoalID    string    `json:"goalId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	MemberIDs []string  `json:"memberIds"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Location  string    `json:"location,omitempty"`
}

// PlanRequest is the snapshot the placement engine consumes. All fields
// are passed by value; the engine never mutates them.
type PlanRequest struct {
	Members      []Member             `json:"members"`
	Availability []AvailabilityWindow `json:"availability"`
	Goals        []Goal               `json:"goals"`
	Vibe         Vibe                 `json:"vibe"`
}

type PlanResponse struct {
	Plans []PlannedEvent `json:"plans"`
}

type ApplyRequest struct {
	Plans []PlannedEvent `json:"plans"`
}

// ApplyResult links a goal to the booked event it produced.
type ApplyResult struct {
	GoalID  string `json:"goalId"`
	EventID string `json:"eventId"`
}

type ApplyResponse struct {
	Created []ApplyResult `json:"created"`
	Updated []ApplyResult `json:"updated"`
}

// BookedEvent is a confirmed calendar event created by an apply pass.
// Unlike PlannedEvent it has stable identity and survives replanning.
type BookedEvent struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	MemberIDs []string  `json:"member_ids"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
