package helpers

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Zero-for-One/TatiBot/models"
	"github.com/pkg/errors"
	"github.com/renstrom/fuzzysearch/fuzzy"
)

const (
	sharedGamesFile = "shared_games.json"
	guildGamesFile  = "games.json"
)

var (
	// ErrGameExists is returned when adding a game whose key is taken
	ErrGameExists = errors.New("game already exists")
	// ErrGameNotFound is returned when a game lookup comes up empty
	ErrGameNotFound = errors.New("game not found")
)

// GameKey derives the catalog key for a game name
func GameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sharedGamesPath() string {
	return filepath.Join(GetDataDir(), sharedGamesFile)
}

func guildGamesPath(guildID string) string {
	return filepath.Join(GuildDir(guildID), guildGamesFile)
}

// LoadSharedGames reads the cross-guild game catalog
func LoadSharedGames() (map[string]models.Game, error) {
	games := make(map[string]models.Game)

	err := ReadJSON(sharedGamesPath(), &games)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return games, nil
}

func SaveSharedGames(games map[string]models.Game) error {
	return WriteJSON(sharedGamesPath(), games)
}

// LoadServerGameList reads the keys enabled for $guildID. The file used
// to hold a full game dict, that shape is converted to its key list and
// rewritten once.
func LoadServerGameList(guildID string) ([]string, error) {
	path := guildGamesPath(guildID)

	var keys []string
	err := ReadJSON(path, &keys)
	if err == nil {
		return keys, nil
	}
	if os.IsNotExist(err) {
		return []string{}, nil
	}

	// legacy shape, a map of key to full game definition
	legacy := make(map[string]models.Game)
	legacyErr := ReadJSON(path, &legacy)
	if legacyErr != nil {
		return nil, err
	}

	keys = make([]string, 0, len(legacy))
	for key := range legacy {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err = SaveServerGameList(guildID, keys)
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func SaveServerGameList(guildID string, keys []string) error {
	return WriteJSON(guildGamesPath(guildID), keys)
}

// LoadGames joins the guild's enabled key list with the shared catalog.
// Keys missing from the catalog are tolerated and simply dropped.
func LoadGames(guildID string) (map[string]models.Game, error) {
	shared, err := LoadSharedGames()
	if err != nil {
		return nil, err
	}

	keys, err := LoadServerGameList(guildID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]models.Game, len(keys))
	for _, key := range keys {
		if game, ok := shared[key]; ok {
			result[key] = game
		}
	}

	return result, nil
}

// NextGameID returns the next free id in the shared catalog
func NextGameID(games map[string]models.Game) int {
	next := 1
	for _, game := range games {
		if game.ID >= next {
			next = game.ID + 1
		}
	}
	return next
}

// AddGame creates $game in the shared catalog and enables it for
// $guildID. The catalog key is the lowercased name, collisions are
// rejected with ErrGameExists.
func AddGame(guildID string, game models.Game) (string, error) {
	if game.Name == "" {
		return "", errors.New("game name must not be empty")
	}
	if game.MinPlayers < 1 || game.MinPlayers > game.MaxPlayers {
		return "", errors.Errorf("invalid player range %d-%d", game.MinPlayers, game.MaxPlayers)
	}

	shared, err := LoadSharedGames()
	if err != nil {
		return "", err
	}

	key := GameKey(game.Name)

	keys, err := LoadServerGameList(guildID)
	if err != nil {
		return "", err
	}
	for _, existing := range keys {
		if existing == key {
			return "", ErrGameExists
		}
	}

	if _, ok := shared[key]; ok {
		// already known from another guild, just enable it here
		keys = append(keys, key)
		return key, SaveServerGameList(guildID, keys)
	}

	game.ID = NextGameID(shared)
	if game.Emoji == "" {
		game.Emoji = models.DefaultGameEmoji
	}
	shared[key] = game

	err = SaveSharedGames(shared)
	if err != nil {
		return "", err
	}

	keys = append(keys, key)
	return key, SaveServerGameList(guildID, keys)
}

// GameUpdate carries the fields of an update command, nil means leave
// the field alone.
type GameUpdate struct {
	Name       *string
	MinPlayers *int
	MaxPlayers *int
	Emoji      *string
	StoreLinks *string
}

// UpdateGame merges $update into the game at $key. A name change moves
// the catalog entry to the new key and rewrites every guild list that
// referenced the old one. Returns the list of changed fields for the
// audit log.
func UpdateGame(guildID string, key string, update GameUpdate) ([]string, error) {
	shared, err := LoadSharedGames()
	if err != nil {
		return nil, err
	}

	game, ok := shared[key]
	if !ok {
		return nil, ErrGameNotFound
	}

	var changed []string
	newKey := key

	if update.Name != nil && *update.Name != game.Name {
		candidate := GameKey(*update.Name)
		if candidate != key {
			if _, taken := shared[candidate]; taken {
				return nil, ErrGameExists
			}
			newKey = candidate
		}
		game.Name = *update.Name
		changed = append(changed, "name")
	}
	if update.MinPlayers != nil && *update.MinPlayers != game.MinPlayers {
		game.MinPlayers = *update.MinPlayers
		changed = append(changed, "min_players")
	}
	if update.MaxPlayers != nil && *update.MaxPlayers != game.MaxPlayers {
		game.MaxPlayers = *update.MaxPlayers
		changed = append(changed, "max_players")
	}
	if update.Emoji != nil && *update.Emoji != game.Emoji {
		game.Emoji = *update.Emoji
		changed = append(changed, "emoji")
	}
	if update.StoreLinks != nil && *update.StoreLinks != game.StoreLinks {
		game.StoreLinks = *update.StoreLinks
		changed = append(changed, "store_links")
	}

	if game.MinPlayers < 1 || game.MinPlayers > game.MaxPlayers {
		return nil, errors.Errorf("invalid player range %d-%d", game.MinPlayers, game.MaxPlayers)
	}

	if len(changed) == 0 {
		return nil, nil
	}

	if newKey != key {
		delete(shared, key)
	}
	shared[newKey] = game

	err = SaveSharedGames(shared)
	if err != nil {
		return nil, err
	}

	if newKey != key {
		err = renameKeyEverywhere(key, newKey)
		if err != nil {
			return nil, err
		}
	}

	return changed, nil
}

// renameKeyEverywhere rewrites guild game lists and vote keys after a
// catalog key changed
func renameKeyEverywhere(oldKey string, newKey string) error {
	guildIDs, err := GuildIDs()
	if err != nil {
		return err
	}

	for _, guildID := range guildIDs {
		keys, err := LoadServerGameList(guildID)
		if err != nil {
			return err
		}

		renamed := false
		for i, key := range keys {
			if key == oldKey {
				keys[i] = newKey
				renamed = true
			}
		}
		if renamed {
			err = SaveServerGameList(guildID, keys)
			if err != nil {
				return err
			}
		}

		votes, err := LoadVotes(guildID)
		if err != nil {
			return err
		}

		changed := false
		for userID, entry := range votes {
			if rating, ok := entry.Votes[oldKey]; ok {
				entry.Votes[newKey] = rating
				delete(entry.Votes, oldKey)
				votes[userID] = entry
				changed = true
			}
		}
		if changed {
			err = SaveVotes(guildID, votes)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// RemoveGameFromServer unlinks $key from the guild's enabled list, the
// shared definition stays for other guilds.
func RemoveGameFromServer(guildID string, key string) error {
	keys, err := LoadServerGameList(guildID)
	if err != nil {
		return err
	}

	kept := keys[:0]
	removed := false
	for _, existing := range keys {
		if existing == key {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}

	if !removed {
		return ErrGameNotFound
	}

	return SaveServerGameList(guildID, kept)
}

// ResolveGame finds a game by id or name among the guild's enabled
// games. A numeric argument is treated as an id only, a miss does not
// fall through to name matching.
func ResolveGame(games map[string]models.Game, arg string) (string, models.Game, error) {
	arg = strings.TrimSpace(arg)

	if id, err := strconv.Atoi(arg); err == nil {
		for key, game := range games {
			if game.ID == id {
				return key, game, nil
			}
		}
		return "", models.Game{}, ErrGameNotFound
	}

	key := GameKey(arg)
	if game, ok := games[key]; ok {
		return key, game, nil
	}

	return "", models.Game{}, ErrGameNotFound
}

// SuggestGame fuzzy-matches $arg against the enabled game names, used
// to soften "not found" replies. Empty when nothing is close.
func SuggestGame(games map[string]models.Game, arg string) string {
	keys := make([]string, 0, len(games))
	for key := range games {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	matches := fuzzy.RankFindFold(arg, keys)
	if len(matches) == 0 {
		return ""
	}

	sort.Sort(matches)
	return games[matches[0].Target].Name
}
