package helpers

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	dataDir      = "data"
	logsDir      = "logs"
	storageMutex sync.Mutex
)

// SetDataDir points the storage layer at $dir, creating it if needed
func SetDataDir(dir string) {
	storageMutex.Lock()
	dataDir = dir
	storageMutex.Unlock()

	os.MkdirAll(dir, 0755)
	os.MkdirAll(filepath.Join(dir, "guilds"), 0755)
}

func GetDataDir() string {
	storageMutex.Lock()
	defer storageMutex.Unlock()

	return dataDir
}

// SetLogsDir points the log cleanup at $dir, creating it if needed
func SetLogsDir(dir string) {
	storageMutex.Lock()
	logsDir = dir
	storageMutex.Unlock()

	os.MkdirAll(dir, 0755)
}

func GetLogsDir() string {
	storageMutex.Lock()
	defer storageMutex.Unlock()

	return logsDir
}

// GuildDir returns the data directory for $guildID, creating it if needed
func GuildDir(guildID string) string {
	dir := filepath.Join(GetDataDir(), "guilds", guildID)
	os.MkdirAll(dir, 0755)
	return dir
}

// GuildIDs lists every guild that has a data directory on disk. Used by
// the scheduled jobs, which have to reach guilds the bot may no longer
// have cached.
func GuildIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(GetDataDir(), "guilds"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading guilds directory")
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// ReadJSON unmarshals the file at $path into $target. A missing file
// leaves $target untouched and returns os.ErrNotExist.
func ReadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrapf(err, "reading %s", path)
	}

	err = json.Unmarshal(data, target)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	return nil
}

// WriteJSON marshals $source and writes it to $path atomically, going
// through a temp file and a rename so readers never see a partial file.
func WriteJSON(path string, source interface{}) error {
	data, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	tmp := path + ".tmp"
	err = os.WriteFile(tmp, data, 0644)
	if err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}

	err = os.Rename(tmp, path)
	if err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}

	return nil
}
