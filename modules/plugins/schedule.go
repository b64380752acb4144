package plugins

import (
	"strconv"
	"strings"
	"time"

	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

type Schedule struct{}

func (s *Schedule) Commands() []string {
	return []string{
		"schedule",
		"schedules",
		"unschedule",
	}
}

func (s *Schedule) Init(session *discordgo.Session) {
}

func (s *Schedule) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	switch command {
	case "schedule":
		helpers.RequireAdmin(msg, func() {
			s.actionSchedule(guildID, lang, content, msg)
		})
	case "schedules":
		s.actionList(guildID, lang, msg)
	case "unschedule":
		helpers.RequireAdmin(msg, func() {
			s.actionUnschedule(guildID, lang, content, msg)
		})
	}
}

// schedule <when> [| description]
func (s *Schedule) actionSchedule(guildID string, lang string, content string, msg *discordgo.Message) {
	parts := strings.SplitN(content, "|", 2)
	whenArg := strings.TrimSpace(parts[0])
	description := ""
	if len(parts) > 1 {
		description = strings.TrimSpace(parts[1])
	}

	if whenArg == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "schedule.usage"))
		return
	}

	at, err := helpers.ParseScheduleTime(whenArg, time.Now())
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "schedule.cannot_parse", whenArg))
		return
	}

	if at.Before(time.Now()) {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "schedule.in_past"))
		return
	}

	id, err := helpers.AddSchedule(guildID, at, description)
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "schedule.added",
		at.Format("Monday 2006-01-02 15:04"), humanize.Time(at), id,
	))
}

func (s *Schedule) actionList(guildID string, lang string, msg *discordgo.Message) {
	upcoming, err := helpers.UpcomingSchedules(guildID, time.Now())
	helpers.Relax(err)

	if len(upcoming) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "schedule.none"))
		return
	}

	var lines []string
	for _, schedule := range upcoming {
		line := "🗓️ **" + schedule.Datetime.Format("Monday 2006-01-02 15:04") + "** (" +
			humanize.Time(schedule.Datetime) + ") `#" + strconv.FormatInt(schedule.ID, 10) + "`"
		if schedule.Description != "" {
			line += "\n   " + schedule.Description
		}
		lines = append(lines, line)
	}

	helpers.SendEmbed(msg.ChannelID, &discordgo.MessageEmbed{
		Title:       helpers.GetTextLang(lang, "schedule.list_title"),
		Description: strings.Join(lines, "\n"),
	})
}

func (s *Schedule) actionUnschedule(guildID string, lang string, content string, msg *discordgo.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "schedule.unschedule_usage"))
		return
	}

	removed, err := helpers.RemoveSchedule(guildID, id)
	helpers.Relax(err)

	if !removed {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "schedule.not_found", id))
		return
	}

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "schedule.removed", id))
}
