package models

// VoteEntry holds one user's votes within one guild.
// A missing game key means rating 0 ("no opinion"), zero ratings are
// never written to disk.
type VoteEntry struct {
	Username    string         `json:"username"`
	Votes       map[string]int `json:"votes"`
	Unavailable bool           `json:"unavailable"`
	Language    string         `json:"language"`
}

// VoteMap maps user ids to their vote entries for one guild
type VoteMap map[string]VoteEntry

const (
	// Ratings are stars, anything outside this range is rejected
	MinRating = 1
	MaxRating = 5
)
