package model

import "time"

type GoalType string

const (
	GoalDateNight  GoalType = "date_night"
	GoalOneOnOne   GoalType = "one_on_one"
	GoalTwoFriends GoalType = "two_friends"
	GoalRunWalk    GoalType = "run_walk"
)

// ValidGoalType reports whether t is one of the known goal types.
func ValidGoalType(t GoalType) bool {
	switch t {
	case GoalDateNight, GoalOneOnOne, GoalTwoFriends, GoalRunWalk:
		return true
	}
	return false
}

// Goal is a recurring-event template awaiting placement. Participants is
// an ordered set of member IDs. RRule is stored verbatim and only used
// for human display. Priority (1-5) is recorded but does not influence
// placement order.
type Goal struct {
	ID           string    `json:"id"`
	Type         GoalType  `json:"type"`
	Participants []string  `json:"participants"`
	DurationMins int       `json:"durationMins"`
	RRule        string    `json:"rrule"`
	LocationHint string    `json:"locationHint,omitempty"`
	Priority     int       `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
