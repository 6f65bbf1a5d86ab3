package planner

import "github.com/dukerupert/novara/internal/model"

// EventContent is the generated title/notes pair for a placed event.
type EventContent struct {
	Title string
	Notes string
}

var fallbackContent = EventContent{
	Title: "Scheduled Event",
	Notes: "Time blocked for this important activity.",
}

var vibeContent = map[model.Vibe]map[model.GoalType]EventContent{
	model.VibeCozy: {
		model.GoalDateNight: {
			Title: "🥰 Date Night",
			Notes: "Time to reconnect and enjoy each other's company. Maybe try that new restaurant or have a cozy night in!",
		},
		model.GoalOneOnOne: {
			Title: "☕ Catch-up Time",
			Notes: "One-on-one time to chat, share updates, and strengthen your bond.",
		},
		model.GoalTwoFriends: {
			Title: "👫 Friend Hangout",
			Notes: "Quality time with friends - maybe grab coffee, go for a walk, or just chill together.",
		},
		model.GoalRunWalk: {
			Title: "🚶 Morning Walk",
			Notes: "A peaceful walk to start the day right and get some fresh air together.",
		},
	},
	model.VibeHype: {
		model.GoalDateNight: {
			Title: "🔥 Epic Date Night",
			Notes: "Let's make this night unforgettable! Time to explore, adventure, and create amazing memories!",
		},
		model.GoalOneOnOne: {
			Title: "⚡ Power Session",
			Notes: "High-energy one-on-one time to sync up, brainstorm, and tackle big ideas together!",
		},
		model.GoalTwoFriends: {
			Title: "🎉 Squad Time",
			Notes: "Time to get the crew together and make some noise! Adventure awaits!",
		},
		model.GoalRunWalk: {
			Title: "🏃 Power Run",
			Notes: "Time to crush those fitness goals! Let's get our heart rates up and conquer the day!",
		},
	},
	model.VibeProfessional: {
		model.GoalDateNight: {
			Title: "Scheduled Quality Time",
			Notes: "Dedicated time for relationship maintenance and meaningful conversation.",
		},
		model.GoalOneOnOne: {
			Title: "Individual Meeting",
			Notes: "Focused one-on-one session for alignment, feedback, and personal development.",
		},
		model.GoalTwoFriends: {
			Title: "Group Session",
			Notes: "Structured social interaction to maintain and strengthen professional relationships.",
		},
		model.GoalRunWalk: {
			Title: "Wellness Activity",
			Notes: "Scheduled physical activity to promote health and team building.",
		},
	},
}

// Content returns the title/notes for a (vibe, goal type) pair, falling
// back to generic text for unrecognized combinations.
func Content(vibe model.Vibe, goalType model.GoalType) EventContent {
	if byType, ok := vibeContent[vibe]; ok {
		if c, ok := byType[goalType]; ok {
			return c
		}
	}
	return fallbackContent
}
