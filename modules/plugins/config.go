package plugins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/bwmarrin/discordgo"
)

type Config struct{}

func (c *Config) Commands() []string {
	return []string{
		"config",
		"configreminder",
		"configgamenight",
		"setprefix",
		"setannouncechannel",
	}
}

func (c *Config) Init(session *discordgo.Session) {
}

func (c *Config) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	switch command {
	case "config":
		c.actionShow(guildID, lang, msg)
	case "configreminder":
		helpers.RequireAdmin(msg, func() {
			c.actionReminder(guildID, lang, content, msg)
		})
	case "configgamenight":
		helpers.RequireAdmin(msg, func() {
			c.actionGameNight(guildID, lang, content, msg)
		})
	case "setprefix":
		helpers.RequireAdmin(msg, func() {
			c.actionPrefix(guildID, lang, content, msg)
		})
	case "setannouncechannel":
		helpers.RequireAdmin(msg, func() {
			c.actionAnnounceChannel(guildID, lang, content, msg)
		})
	}
}

func (c *Config) actionShow(guildID string, lang string, msg *discordgo.Message) {
	settings := helpers.GuildSettingsGetCached(guildID)

	reminder := helpers.WeekdayName(settings.ReminderDay) + " " +
		formatClock(settings.ReminderHour, settings.ReminderMinute)

	gameNight := helpers.GetTextLang(lang, "config.game_night_off")
	if settings.GameNightConfigured() {
		gameNight = helpers.WeekdayName(*settings.GameNightDay) + " " +
			formatClock(*settings.GameNightHour, *settings.GameNightMinute)
	}

	announce := helpers.GetTextLang(lang, "config.channel_auto")
	if settings.AnnounceChannel != "" {
		announce = "<#" + settings.AnnounceChannel + ">"
	}

	roles := helpers.GetTextLang(lang, "config.roles_admins_only")
	if len(settings.GameManagementRoles) > 0 {
		mentions := make([]string, 0, len(settings.GameManagementRoles))
		for _, roleID := range settings.GameManagementRoles {
			mentions = append(mentions, "<@&"+roleID+">")
		}
		roles = strings.Join(mentions, ", ")
	}

	helpers.SendEmbed(msg.ChannelID, &discordgo.MessageEmbed{
		Title: helpers.GetTextLang(lang, "config.title"),
		Fields: []*discordgo.MessageEmbedField{
			{Name: helpers.GetTextLang(lang, "config.prefix"), Value: helpers.GetPrefixForServer(guildID), Inline: true},
			{Name: helpers.GetTextLang(lang, "config.reminder"), Value: reminder, Inline: true},
			{Name: helpers.GetTextLang(lang, "config.game_night"), Value: gameNight, Inline: true},
			{Name: helpers.GetTextLang(lang, "config.announce_channel"), Value: announce, Inline: true},
			{Name: helpers.GetTextLang(lang, "config.game_roles"), Value: roles, Inline: true},
		},
	})
}

// configreminder <day> <hour> <minute>
func (c *Config) actionReminder(guildID string, lang string, content string, msg *discordgo.Message) {
	day, hour, minute, ok := parseWeeklySlot(content)
	if !ok {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.reminder_usage"))
		return
	}

	settings := helpers.GuildSettingsGetCached(guildID)
	settings.ReminderDay = day
	settings.ReminderHour = hour
	settings.ReminderMinute = minute

	err := helpers.GuildSettingsSet(guildID, settings)
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "config.reminder_set", helpers.WeekdayName(day), formatClock(hour, minute)))
}

// configgamenight <day> <hour> <minute>, or "off" to disable
func (c *Config) actionGameNight(guildID string, lang string, content string, msg *discordgo.Message) {
	settings := helpers.GuildSettingsGetCached(guildID)

	disable := strings.TrimSpace(strings.ToLower(content))
	if disable == "off" || disable == "none" {
		settings.GameNightDay = nil
		settings.GameNightHour = nil
		settings.GameNightMinute = nil

		err := helpers.GuildSettingsSet(guildID, settings)
		helpers.Relax(err)

		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.game_night_disabled"))
		return
	}

	day, hour, minute, ok := parseWeeklySlot(content)
	if !ok {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.game_night_usage"))
		return
	}

	settings.GameNightDay = &day
	settings.GameNightHour = &hour
	settings.GameNightMinute = &minute

	err := helpers.GuildSettingsSet(guildID, settings)
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "config.game_night_set", helpers.WeekdayName(day), formatClock(hour, minute)))
}

func (c *Config) actionPrefix(guildID string, lang string, content string, msg *discordgo.Message) {
	prefix := strings.TrimSpace(content)
	if prefix == "" || len(prefix) > 5 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.prefix_usage"))
		return
	}

	err := helpers.SetPrefixForServer(guildID, prefix)
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "config.prefix_set", prefix))
}

// setannouncechannel [#channel], no argument resets to auto-pick
func (c *Config) actionAnnounceChannel(guildID string, lang string, content string, msg *discordgo.Message) {
	settings := helpers.GuildSettingsGetCached(guildID)

	channelID := ""
	if strings.TrimSpace(content) != "" {
		mention := strings.TrimSpace(content)
		mention = strings.TrimPrefix(mention, "<#")
		mention = strings.TrimSuffix(mention, ">")
		if _, err := strconv.ParseUint(mention, 10, 64); err != nil {
			helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.channel_usage"))
			return
		}
		channelID = mention
	}

	settings.AnnounceChannel = channelID

	err := helpers.GuildSettingsSet(guildID, settings)
	helpers.Relax(err)

	if channelID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "config.channel_reset"))
		return
	}

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "config.channel_set", channelID))
}

func parseWeeklySlot(content string) (string, int, int, bool) {
	args := strings.Fields(content)
	if len(args) < 2 {
		return "", 0, 0, false
	}

	day, err := helpers.ParseWeekday(args[0])
	if err != nil {
		return "", 0, 0, false
	}

	hour, err := strconv.Atoi(args[1])
	if err != nil || hour < 0 || hour > 23 {
		return "", 0, 0, false
	}

	minute := 0
	if len(args) > 2 {
		minute, err = strconv.Atoi(args[2])
		if err != nil || minute < 0 || minute > 59 {
			return "", 0, 0, false
		}
	}

	return helpers.WeekdayCode(day), hour, minute, true
}

func formatClock(hour int, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}
