package helpers

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Zero-for-One/TatiBot/models"
)

const serverConfigFile = "config.json"

var (
	guildSettingsCache = make(map[string]models.ServerConfig)
	cacheMutex         sync.RWMutex
)

func serverConfigPath(guildID string) string {
	return filepath.Join(GuildDir(guildID), serverConfigFile)
}

// GuildSettingsSet writes $config to disk and refreshes the cache
func GuildSettingsSet(guildID string, config models.ServerConfig) error {
	err := WriteJSON(serverConfigPath(guildID), config)
	if err != nil {
		return err
	}

	cacheMutex.Lock()
	guildSettingsCache[guildID] = config
	cacheMutex.Unlock()

	return nil
}

// GuildSettingsGet returns the config for the guild or a default object
func GuildSettingsGet(guildID string) (models.ServerConfig, error) {
	settings := models.ServerConfig{}.Default()

	err := ReadJSON(serverConfigPath(guildID), &settings)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if settings.GameManagementRoles == nil {
		settings.GameManagementRoles = []string{}
	}

	return settings, nil
}

func GuildSettingsGetCached(guildID string) models.ServerConfig {
	cacheMutex.RLock()
	settings, ok := guildSettingsCache[guildID]
	cacheMutex.RUnlock()

	if ok {
		return settings
	}

	settings, err := GuildSettingsGet(guildID)
	if err != nil {
		return models.ServerConfig{}.Default()
	}

	cacheMutex.Lock()
	guildSettingsCache[guildID] = settings
	cacheMutex.Unlock()

	return settings
}

// GetPrefixForServer gets the prefix for $guild, falling back to the
// global default
func GetPrefixForServer(guildID string) string {
	prefix := GuildSettingsGetCached(guildID).Prefix
	if prefix == "" {
		return ConfigPathString("discord.prefix", "!")
	}

	return prefix
}

// SetPrefixForServer sets the prefix for $guild to $prefix
func SetPrefixForServer(guildID string, prefix string) error {
	settings := GuildSettingsGetCached(guildID)

	settings.Prefix = prefix

	return GuildSettingsSet(guildID, settings)
}
