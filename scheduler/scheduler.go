// Package scheduler runs the recurring jobs: per-guild vote reminders
// and game night announcements, the weekly vote reset and the retention
// cleanups for vote backups and log files.
package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/logging"
	"github.com/Zero-for-One/TatiBot/metrics"
	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	voteBackupRetention = 30 * 24 * time.Hour
	logRetention        = 7 * 24 * time.Hour
)

var instance *cron.Cron

func log() *logrus.Entry {
	return cache.GetLogger().WithField("module", "scheduler")
}

// Init starts the cron loop. Fixed slots follow the data layout: the
// weekly reset runs wednesday 23:59, cleanups run in the night.
func Init() {
	instance = cron.New()

	instance.AddFunc("* * * * *", guildTick)
	instance.AddFunc("59 23 * * 3", WeeklyReset)
	instance.AddFunc("0 2 * * *", CleanOldVoteBackups)
	instance.AddFunc("5 2 * * *", CleanOldLogs)

	instance.Start()

	log().Info("scheduler started with 4 jobs")
}

// Stop halts the cron loop, running jobs finish on their own
func Stop() {
	if instance != nil {
		instance.Stop()
	}
}

// guildTick fires every minute and matches each guild's configured
// reminder and game night slots against the wall clock. One broken
// guild must not starve the rest.
func guildTick() {
	defer helpers.Recover()

	now := time.Now()

	guildIDs, err := helpers.GuildIDs()
	if err != nil {
		log().Error("listing guilds: " + err.Error())
		return
	}

	for _, guildID := range guildIDs {
		func() {
			defer helpers.Recover()
			tickGuild(guildID, now)
		}()
	}
}

func tickGuild(guildID string, now time.Time) {
	settings := helpers.GuildSettingsGetCached(guildID)

	if matchesSlot(now, settings.ReminderDay, settings.ReminderHour, settings.ReminderMinute) {
		sendReminder(guildID)
	}

	if settings.GameNightConfigured() &&
		matchesSlot(now, *settings.GameNightDay, *settings.GameNightHour, *settings.GameNightMinute) {
		sendGameNightAnnouncement(guildID)
	}

	announceDueSchedules(guildID, now)
}

func matchesSlot(now time.Time, dayCode string, hour int, minute int) bool {
	day, err := helpers.ParseWeekday(dayCode)
	if err != nil {
		return false
	}

	return now.Weekday() == day && now.Hour() == hour && now.Minute() == minute
}

func sendReminder(guildID string) {
	channelID := helpers.FindAnnounceChannel(guildID)
	if channelID == "" {
		log().Warn("no postable channel for reminder on guild " + guildID)
		return
	}

	_, err := helpers.SendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       helpers.GetText("scheduler.reminder_title"),
		Description: helpers.GetText("scheduler.reminder_text"),
	})
	if err != nil {
		log().Error("sending reminder to guild " + guildID + ": " + err.Error())
		return
	}

	metrics.RemindersSent.Add(1)
	log().Info("reminder sent to guild " + guildID)
}

func sendGameNightAnnouncement(guildID string) {
	channelID := helpers.FindAnnounceChannel(guildID)
	if channelID == "" {
		log().Warn("no postable channel for game night on guild " + guildID)
		return
	}

	votes, err := helpers.LoadVotes(guildID)
	if err != nil {
		log().Error("loading votes for guild " + guildID + ": " + err.Error())
		return
	}

	games, err := helpers.LoadGames(guildID)
	if err != nil {
		log().Error("loading games for guild " + guildID + ": " + err.Error())
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       helpers.GetText("scheduler.game_night_title"),
		Description: helpers.GetText("scheduler.game_night_text"),
	}

	rec := helpers.Recommend(games, votes)
	if rec.Winner != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  helpers.GetText("scheduler.game_night_winner"),
			Value: rec.Winner.Game.DisplayEmoji() + " **" + rec.Winner.Game.Name + "**",
		})
	}

	_, err = helpers.SendEmbed(channelID, embed)
	if err != nil {
		log().Error("sending game night announcement to guild " + guildID + ": " + err.Error())
	}
}

// announceDueSchedules posts one-off game nights whose time has come
// and drops them from the schedule file
func announceDueSchedules(guildID string, now time.Time) {
	schedules, err := helpers.LoadSchedules(guildID)
	if err != nil {
		log().Error("loading schedules for guild " + guildID + ": " + err.Error())
		return
	}

	due := false
	kept := schedules[:0]
	for _, schedule := range schedules {
		if schedule.Datetime.After(now) {
			kept = append(kept, schedule)
			continue
		}

		due = true
		if channelID := helpers.FindAnnounceChannel(guildID); channelID != "" {
			text := helpers.GetText("scheduler.one_off_now")
			if schedule.Description != "" {
				text += "\n" + schedule.Description
			}
			helpers.SendEmbed(channelID, &discordgo.MessageEmbed{
				Title:       helpers.GetText("scheduler.game_night_title"),
				Description: text,
			})
		}
		log().Info("announced scheduled game night on guild " + guildID)
	}

	if due {
		err = helpers.SaveSchedules(guildID, kept)
		if err != nil {
			log().Error("saving schedules for guild " + guildID + ": " + err.Error())
		}
	}
}

// WeeklyReset backs up and clears every guild's votes, continuing past
// individual failures
func WeeklyReset() {
	defer helpers.Recover()

	log().Info("weekly vote reset starting")

	guildIDs, err := helpers.GuildIDs()
	if err != nil {
		log().Error("listing guilds: " + err.Error())
		return
	}

	for _, guildID := range guildIDs {
		backup, err := helpers.BackupVotes(guildID)
		if err != nil {
			log().Error("backing up votes for guild " + guildID + ": " + err.Error())
			continue
		}

		err = helpers.ClearVotes(guildID)
		if err != nil {
			log().Error("clearing votes for guild " + guildID + ": " + err.Error())
			continue
		}

		if channelID := helpers.FindAnnounceChannel(guildID); channelID != "" {
			embed := &discordgo.MessageEmbed{
				Title:       helpers.GetText("scheduler.reset_title"),
				Description: helpers.GetText("scheduler.reset_text"),
			}
			if backup != "" {
				embed.Footer = &discordgo.MessageEmbedFooter{
					Text: helpers.GetTextF("scheduler.reset_backup", backup),
				}
			}
			helpers.SendEmbed(channelID, embed)
		}

		log().Info("votes reset for guild " + guildID)
	}

	metrics.VoteResets.Add(1)
}

// CleanOldVoteBackups deletes vote backups past the retention window,
// keying on the date embedded in the filename
func CleanOldVoteBackups() {
	defer helpers.Recover()

	cutoff := time.Now().Add(-voteBackupRetention)

	guildIDs, err := helpers.GuildIDs()
	if err != nil {
		log().Error("listing guilds: " + err.Error())
		return
	}

	deleted := 0
	for _, guildID := range guildIDs {
		dir := helpers.GuildDir(guildID)

		entries, err := os.ReadDir(dir)
		if err != nil {
			log().Error("reading guild dir " + guildID + ": " + err.Error())
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, "votes.old.") || !strings.HasSuffix(name, ".json") {
				continue
			}

			date, err := helpers.ParseBackupDate(name)
			if err != nil {
				log().Warn("could not parse date from backup filename " + name + ", skipping")
				continue
			}

			if date.Before(cutoff) {
				err = os.Remove(filepath.Join(dir, name))
				if err != nil {
					log().Error("deleting " + name + ": " + err.Error())
					continue
				}
				deleted++
			}
		}
	}

	log().Infof("vote backup cleanup done, deleted %d file(s)", deleted)
}

// CleanOldLogs deletes dated log files past the retention window
func CleanOldLogs() {
	defer helpers.Recover()

	cutoff := time.Now().Add(-logRetention)
	dir := helpers.GetLogsDir()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log().Error("reading logs dir: " + err.Error())
		return
	}

	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if !logging.IsDatedLogFile(name) {
			continue
		}

		date, err := logging.ParseLogDate(name)
		if err != nil {
			log().Warn("could not parse date from log filename " + name + ", skipping")
			continue
		}

		if date.Before(cutoff) {
			err = os.Remove(filepath.Join(dir, name))
			if err != nil {
				log().Error("deleting " + name + ": " + err.Error())
				continue
			}
			deleted++
		}
	}

	log().Infof("log cleanup done, deleted %d file(s)", deleted)
}
