package models

// ServerConfig holds the per-guild settings. The game night fields are
// pointers so that "not configured" round-trips as JSON null, they are
// set and cleared together.
type ServerConfig struct {
	Prefix string `json:"prefix"`

	ReminderDay    string `json:"reminder_day"`
	ReminderHour   int    `json:"reminder_hour"`
	ReminderMinute int    `json:"reminder_minute"`

	GameNightDay    *string `json:"game_night_day"`
	GameNightHour   *int    `json:"game_night_hour"`
	GameNightMinute *int    `json:"game_night_minute"`

	// role ids allowed to manage the game catalog, empty means admins only
	GameManagementRoles []string `json:"game_management_roles"`

	// channel used for reminders and reset notices, empty means auto-pick
	AnnounceChannel string `json:"announce_channel,omitempty"`
}

func (c ServerConfig) Default() ServerConfig {
	return ServerConfig{
		Prefix: "",

		ReminderDay:    "sun",
		ReminderHour:   20,
		ReminderMinute: 0,

		GameManagementRoles: []string{},
	}
}

// GameNightConfigured reports whether a recurring game night is set up.
func (c ServerConfig) GameNightConfigured() bool {
	return c.GameNightDay != nil && c.GameNightHour != nil && c.GameNightMinute != nil
}
