package models

// DefaultGameEmoji is used whenever a game has no emoji of its own.
const DefaultGameEmoji = "🎮"

// Game is one entry in the shared, cross-guild games catalog.
// Games are keyed by their lowercased name and never hard-deleted;
// "removing" a game only unlinks it from a guild's enabled list.
type Game struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
	Emoji      string `json:"emoji"`
	StoreLinks string `json:"store_links,omitempty"`
}

// DisplayEmoji returns the game's emoji or the default one
func (g Game) DisplayEmoji() string {
	if g.Emoji == "" {
		return DefaultGameEmoji
	}
	return g.Emoji
}

// FitsPlayerCount reports whether the game can be played with n players
func (g Game) FitsPlayerCount(n int) bool {
	return g.MinPlayers <= n && n <= g.MaxPlayers
}
