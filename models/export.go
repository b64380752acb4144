package models

// ExportBundle is the portable snapshot of a guild's data. The shared
// catalog was historically serialized under "games", the old field is
// still read on import.
type ExportBundle struct {
	GuildID     string          `json:"guild_id"`
	ExportDate  string          `json:"export_date"`
	SharedGames map[string]Game `json:"shared_games,omitempty"`
	LegacyGames map[string]Game `json:"games,omitempty"`
	GameList    []string        `json:"server_game_list,omitempty"`
	Votes       VoteMap         `json:"votes,omitempty"`
	Config      *ServerConfig   `json:"config,omitempty"`
	Schedules   []Schedule      `json:"schedules,omitempty"`
}

// Catalog returns the shared game definitions, falling back to the
// legacy field.
func (b ExportBundle) Catalog() map[string]Game {
	if len(b.SharedGames) > 0 {
		return b.SharedGames
	}
	return b.LegacyGames
}

// ImportResult summarizes what an import changed.
type ImportResult struct {
	Games          int
	Votes          int
	ConfigApplied  bool
	SchedulesAdded int
}
