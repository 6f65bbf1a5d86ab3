package model

// LocationPref is a member's preferred meeting location for a window.
type LocationPref string

const (
	PrefHome   LocationPref = "home"
	PrefOffice LocationPref = "office"
	PrefEither LocationPref = "either"
)

// AvailabilityWindow is a contiguous half-open [Start, End) range on one
// weekday during which a member is free. Start and End are HH:MM clock
// strings on 30-minute boundaries. Day uses 0=Sunday through 6=Saturday.
type AvailabilityWindow struct {
	ID           string       `json:"id"`
	MemberID     string       `json:"memberId"`
	Day          int          `json:"day"`
	Start        string       `json:"start"`
	End          string       `json:"end"`
	LocationPref LocationPref `json:"locationPref,omitempty"`
}
