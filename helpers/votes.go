package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/models"
	"github.com/pkg/errors"
)

const (
	votesFile        = "votes.json"
	voteBackupPrefix = "votes.old."
	backupDateLayout = "2006-01-02"
)

// ErrAlreadyInState is returned when an availability toggle would not
// change anything, so the caller can word the reply accordingly.
var ErrAlreadyInState = errors.New("user already in requested state")

func votesPath(guildID string) string {
	return filepath.Join(GuildDir(guildID), votesFile)
}

// LoadVotes reads the vote map for $guildID, a missing file yields an
// empty map.
func LoadVotes(guildID string) (models.VoteMap, error) {
	votes := make(models.VoteMap)

	err := ReadJSON(votesPath(guildID), &votes)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return votes, nil
}

func SaveVotes(guildID string, votes models.VoteMap) error {
	return WriteJSON(votesPath(guildID), votes)
}

// SetRating stores $rating for $gameKey and marks the user available.
// Casting a vote is taken as showing up.
func SetRating(guildID string, userID string, username string, gameKey string, rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return errors.Errorf("rating %d out of range %d-%d", rating, models.MinRating, models.MaxRating)
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		return err
	}

	entry := votes[userID]
	entry.Username = username
	entry.Unavailable = false
	if entry.Votes == nil {
		entry.Votes = make(map[string]int)
	}
	entry.Votes[gameKey] = rating
	votes[userID] = entry

	return SaveVotes(guildID, votes)
}

// SetAvailability flags $userID as available or unavailable for the next
// game night. Returns ErrAlreadyInState when nothing changed.
func SetAvailability(guildID string, userID string, username string, unavailable bool) error {
	votes, err := LoadVotes(guildID)
	if err != nil {
		return err
	}

	entry, exists := votes[userID]
	if exists && entry.Unavailable == unavailable {
		return ErrAlreadyInState
	}

	entry.Username = username
	entry.Unavailable = unavailable
	if entry.Votes == nil {
		entry.Votes = make(map[string]int)
	}
	votes[userID] = entry

	return SaveVotes(guildID, votes)
}

// GetUserLanguage returns the stored reply language for $userID, empty
// when the user never picked one.
func GetUserLanguage(guildID string, userID string) string {
	votes, err := LoadVotes(guildID)
	if err != nil {
		return ""
	}

	return votes[userID].Language
}

func SetUserLanguage(guildID string, userID string, username string, lang string) error {
	votes, err := LoadVotes(guildID)
	if err != nil {
		return err
	}

	entry := votes[userID]
	entry.Username = username
	entry.Language = lang
	if entry.Votes == nil {
		entry.Votes = make(map[string]int)
	}
	votes[userID] = entry

	return SaveVotes(guildID, votes)
}

// BackupVotes snapshots the current vote file as votes.old.YYYY-MM-DD.json.
// An empty vote map is not worth a backup. A second backup on the same
// day overwrites the first.
func BackupVotes(guildID string) (string, error) {
	votes, err := LoadVotes(guildID)
	if err != nil {
		return "", err
	}
	if len(votes) == 0 {
		return "", nil
	}

	name := voteBackupPrefix + time.Now().Format(backupDateLayout) + ".json"
	path := filepath.Join(GuildDir(guildID), name)

	err = WriteJSON(path, votes)
	if err != nil {
		return "", err
	}

	return name, nil
}

// ClearVotes resets the vote file to an empty map
func ClearVotes(guildID string) error {
	return SaveVotes(guildID, make(models.VoteMap))
}

// voteBackups lists backup filenames for $guildID, newest date first
func voteBackups(guildID string) ([]string, error) {
	entries, err := os.ReadDir(GuildDir(guildID))
	if err != nil {
		return nil, errors.Wrap(err, "reading guild directory")
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, voteBackupPrefix) && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ParseBackupDate extracts the date from a vote backup filename
func ParseBackupDate(name string) (time.Time, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(name, voteBackupPrefix), ".json")
	return time.Parse(backupDateLayout, raw)
}

// RestoreFromBackup brings back one user's ratings from the newest
// snapshot in which they voted. Other users' current votes are never
// touched. Only ratings for games still enabled on the server are
// applied, the rest of the user's current entry (availability flag,
// language) stays as it is. Returns how many ratings were applied and
// the snapshot date.
func RestoreFromBackup(guildID string, userID string, username string, enabledKeys []string) (int, string, error) {
	names, err := voteBackups(guildID)
	if err != nil {
		return 0, "", err
	}

	enabled := make(map[string]bool, len(enabledKeys))
	for _, key := range enabledKeys {
		enabled[key] = true
	}

	log := cache.GetLoggerIfSet()

	for _, name := range names {
		backup := make(models.VoteMap)
		err = ReadJSON(filepath.Join(GuildDir(guildID), name), &backup)
		if err != nil {
			if log != nil {
				log.WithField("module", "votes").Warn(fmt.Sprintf("skipping unreadable vote backup %s: %v", name, err))
			}
			continue
		}

		old, ok := backup[userID]
		if !ok || len(old.Votes) == 0 {
			continue
		}

		votes, err := LoadVotes(guildID)
		if err != nil {
			return 0, "", err
		}

		entry := votes[userID]
		entry.Username = username
		if entry.Votes == nil {
			entry.Votes = make(map[string]int)
		}

		applied := 0
		for key, rating := range old.Votes {
			if enabled[key] {
				entry.Votes[key] = rating
				applied++
			}
		}
		votes[userID] = entry

		err = SaveVotes(guildID, votes)
		if err != nil {
			return 0, "", err
		}

		date := strings.TrimSuffix(strings.TrimPrefix(name, voteBackupPrefix), ".json")
		return applied, date, nil
	}

	return 0, "", errors.New("no snapshot holds votes of this user")
}
