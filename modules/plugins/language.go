package plugins

import (
	"strings"

	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/bwmarrin/discordgo"
)

var supportedLanguages = []string{"en", "fr"}

type Language struct{}

func (l *Language) Commands() []string {
	return []string{
		"language",
		"lang",
	}
}

func (l *Language) Init(session *discordgo.Session) {
}

func (l *Language) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	choice := strings.ToLower(strings.TrimSpace(content))
	if choice == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
			lang, "language.current", lang, strings.Join(supportedLanguages, ", ")))
		return
	}

	supported := false
	for _, candidate := range supportedLanguages {
		if choice == candidate {
			supported = true
			break
		}
	}
	if !supported {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
			lang, "language.unsupported", choice, strings.Join(supportedLanguages, ", ")))
		return
	}

	err := helpers.SetUserLanguage(guildID, msg.Author.ID, msg.Author.Username, choice)
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(choice, "language.changed"))
}
