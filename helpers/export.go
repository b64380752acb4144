package helpers

import (
	"time"

	"github.com/Zero-for-One/TatiBot/models"
)

// ExportGuildData bundles everything about a guild into one document.
// The shared catalog rides along in full so the bundle can seed a fresh
// installation.
func ExportGuildData(guildID string) (models.ExportBundle, error) {
	var bundle models.ExportBundle

	shared, err := LoadSharedGames()
	if err != nil {
		return bundle, err
	}

	keys, err := LoadServerGameList(guildID)
	if err != nil {
		return bundle, err
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		return bundle, err
	}

	config, err := GuildSettingsGet(guildID)
	if err != nil {
		return bundle, err
	}

	schedules, err := LoadSchedules(guildID)
	if err != nil {
		return bundle, err
	}

	bundle = models.ExportBundle{
		GuildID:     guildID,
		ExportDate:  time.Now().Format(time.RFC3339),
		SharedGames: shared,
		GameList:    keys,
		Votes:       votes,
		Config:      &config,
		Schedules:   schedules,
	}

	return bundle, nil
}

// ImportGuildData applies $bundle to $guildID. With $overwrite, files
// are replaced wholesale. Without it, existing data wins: known shared
// games and known voters are kept, schedules are deduplicated by id.
// Sections are applied independently, a failing one does not stop the
// rest, the first failure is returned after everything ran.
func ImportGuildData(guildID string, bundle models.ExportBundle, overwrite bool) (models.ImportResult, error) {
	var result models.ImportResult
	var firstErr error

	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if catalog := bundle.Catalog(); len(catalog) > 0 {
		err := importSharedGames(catalog, overwrite)
		if err != nil {
			fail(err)
		} else {
			result.Games = len(catalog)
		}
	}

	if bundle.GameList != nil {
		if err := SaveServerGameList(guildID, bundle.GameList); err != nil {
			fail(err)
		}
	}

	if bundle.Votes != nil {
		err := importVotes(guildID, bundle.Votes, overwrite)
		if err != nil {
			fail(err)
		} else {
			result.Votes = len(bundle.Votes)
		}
	}

	if bundle.Config != nil {
		err := importConfig(guildID, *bundle.Config, overwrite)
		if err != nil {
			fail(err)
		} else {
			result.ConfigApplied = true
		}
	}

	if bundle.Schedules != nil {
		added, err := importSchedules(guildID, bundle.Schedules, overwrite)
		if err != nil {
			fail(err)
		} else {
			result.SchedulesAdded = added
		}
	}

	return result, firstErr
}

func importSharedGames(catalog map[string]models.Game, overwrite bool) error {
	if overwrite {
		return SaveSharedGames(catalog)
	}

	shared, err := LoadSharedGames()
	if err != nil {
		return err
	}
	for key, game := range catalog {
		if _, exists := shared[key]; !exists {
			shared[key] = game
		}
	}
	return SaveSharedGames(shared)
}

func importVotes(guildID string, votes models.VoteMap, overwrite bool) error {
	if overwrite {
		return SaveVotes(guildID, votes)
	}

	existing, err := LoadVotes(guildID)
	if err != nil {
		return err
	}
	for userID, entry := range votes {
		if _, exists := existing[userID]; !exists {
			existing[userID] = entry
		}
	}
	return SaveVotes(guildID, existing)
}

func importConfig(guildID string, config models.ServerConfig, overwrite bool) error {
	if overwrite {
		return GuildSettingsSet(guildID, config)
	}

	existing, err := GuildSettingsGet(guildID)
	if err != nil {
		return err
	}
	return GuildSettingsSet(guildID, mergeConfig(config, existing))
}

func importSchedules(guildID string, schedules []models.Schedule, overwrite bool) (int, error) {
	if overwrite {
		return len(schedules), SaveSchedules(guildID, schedules)
	}

	existing, err := LoadSchedules(guildID)
	if err != nil {
		return 0, err
	}

	known := make(map[int64]bool, len(existing))
	for _, schedule := range existing {
		known[schedule.ID] = true
	}

	added := 0
	for _, schedule := range schedules {
		if !known[schedule.ID] {
			existing = append(existing, schedule)
			added++
		}
	}

	return added, SaveSchedules(guildID, existing)
}

// mergeConfig overlays $existing on $imported field by field, values the
// guild already set win over imported ones.
func mergeConfig(imported models.ServerConfig, existing models.ServerConfig) models.ServerConfig {
	merged := existing

	if merged.Prefix == "" {
		merged.Prefix = imported.Prefix
	}
	if merged.AnnounceChannel == "" {
		merged.AnnounceChannel = imported.AnnounceChannel
	}
	if len(merged.GameManagementRoles) == 0 {
		merged.GameManagementRoles = imported.GameManagementRoles
	}
	if !merged.GameNightConfigured() && imported.GameNightConfigured() {
		merged.GameNightDay = imported.GameNightDay
		merged.GameNightHour = imported.GameNightHour
		merged.GameNightMinute = imported.GameNightMinute
	}

	return merged
}
