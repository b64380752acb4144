package plugins

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/models"
	"github.com/bwmarrin/discordgo"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Admin struct{}

func (a *Admin) Commands() []string {
	return []string{
		"clearvotes",
		"exportdata",
		"importdata",
	}
}

func (a *Admin) Init(session *discordgo.Session) {
}

func (a *Admin) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	switch command {
	case "clearvotes":
		helpers.RequireGameManagement(msg, func() {
			a.actionClearVotes(guildID, lang, msg)
		})
	case "exportdata":
		helpers.RequireAdmin(msg, func() {
			a.actionExport(guildID, lang, msg)
		})
	case "importdata":
		helpers.RequireAdmin(msg, func() {
			a.actionImport(guildID, lang, content, msg)
		})
	}
}

func (a *Admin) actionClearVotes(guildID string, lang string, msg *discordgo.Message) {
	backup, err := helpers.BackupVotes(guildID)
	helpers.Relax(err)

	err = helpers.ClearVotes(guildID)
	helpers.Relax(err)

	cache.GetLogger().WithField("module", "admin").Info(
		"votes cleared on " + guildID + " by " + msg.Author.Username)

	if backup == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "admin.votes_cleared_empty"))
		return
	}

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "admin.votes_cleared", backup))
}

func (a *Admin) actionExport(guildID string, lang string, msg *discordgo.Message) {
	bundle, err := helpers.ExportGuildData(guildID)
	helpers.Relax(err)

	data, err := json.MarshalIndent(bundle, "", "  ")
	helpers.Relax(err)

	filename := "tatibot-export-" + guildID + "-" + time.Now().Format("2006-01-02") + ".json"

	_, err = cache.GetSession().ChannelFileSendWithMessage(
		msg.ChannelID,
		helpers.GetTextLang(lang, "admin.export_done"),
		filename,
		bytes.NewReader(data),
	)
	helpers.Relax(err)
}

// importdata [overwrite], reads the bundle from the message attachment
func (a *Admin) actionImport(guildID string, lang string, content string, msg *discordgo.Message) {
	if len(msg.Attachments) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "admin.import_usage"))
		return
	}

	overwrite := strings.Contains(strings.ToLower(content), "overwrite")

	resp, err := http.Get(msg.Attachments[0].URL)
	helpers.Relax(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	helpers.Relax(err)

	var bundle models.ExportBundle
	err = json.Unmarshal(data, &bundle)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "admin.import_invalid"))
		return
	}

	result, err := helpers.ImportGuildData(guildID, bundle, overwrite)
	helpers.Relax(err)

	cache.GetLogger().WithField("module", "admin").Info(
		"data imported on " + guildID + " by " + msg.Author.Username)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "admin.import_done",
		result.Games, result.Votes, result.SchedulesAdded,
	))
}
