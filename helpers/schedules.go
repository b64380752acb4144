package helpers

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Zero-for-One/TatiBot/models"
)

const schedulesFile = "schedules.json"

func schedulesPath(guildID string) string {
	return filepath.Join(GuildDir(guildID), schedulesFile)
}

// LoadSchedules reads the guild's one-off game nights, soonest first
func LoadSchedules(guildID string) ([]models.Schedule, error) {
	var schedules []models.Schedule

	err := ReadJSON(schedulesPath(guildID), &schedules)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	sortSchedules(schedules)
	return schedules, nil
}

func SaveSchedules(guildID string, schedules []models.Schedule) error {
	sortSchedules(schedules)
	return WriteJSON(schedulesPath(guildID), schedules)
}

// AddSchedule stores a new one-off game night and returns its id
func AddSchedule(guildID string, at time.Time, description string) (int64, error) {
	schedules, err := LoadSchedules(guildID)
	if err != nil {
		return 0, err
	}

	schedule := models.Schedule{
		ID:          at.Unix(),
		Datetime:    at,
		Description: description,
		CreatedAt:   time.Now(),
	}

	schedules = append(schedules, schedule)

	return schedule.ID, SaveSchedules(guildID, schedules)
}

// RemoveSchedule deletes the schedule with $id, reporting whether it
// existed
func RemoveSchedule(guildID string, id int64) (bool, error) {
	schedules, err := LoadSchedules(guildID)
	if err != nil {
		return false, err
	}

	kept := schedules[:0]
	removed := false
	for _, schedule := range schedules {
		if schedule.ID == id {
			removed = true
			continue
		}
		kept = append(kept, schedule)
	}

	if !removed {
		return false, nil
	}

	return true, SaveSchedules(guildID, kept)
}

// UpcomingSchedules returns the schedules at or after $now, soonest first
func UpcomingSchedules(guildID string, now time.Time) ([]models.Schedule, error) {
	schedules, err := LoadSchedules(guildID)
	if err != nil {
		return nil, err
	}

	var upcoming []models.Schedule
	for _, schedule := range schedules {
		if !schedule.Datetime.Before(now) {
			upcoming = append(upcoming, schedule)
		}
	}

	return upcoming, nil
}

func sortSchedules(schedules []models.Schedule) {
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Datetime.Before(schedules[j].Datetime)
	})
}
