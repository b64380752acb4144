package plugins

import (
	"sort"

	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/models"
	"github.com/bwmarrin/discordgo"
)

type keyedGame struct {
	Key  string
	Game models.Game
}

// sortedByID flattens a game map into a slice ordered by game id
func sortedByID(games map[string]models.Game) []keyedGame {
	sorted := make([]keyedGame, 0, len(games))
	for key, game := range games {
		sorted = append(sorted, keyedGame{Key: key, Game: game})
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Game.ID != sorted[j].Game.ID {
			return sorted[i].Game.ID < sorted[j].Game.ID
		}
		return sorted[i].Game.Name < sorted[j].Game.Name
	})

	return sorted
}

// guildAndLang resolves the guild a command came from and the author's
// stored reply language
func guildAndLang(msg *discordgo.Message) (string, string) {
	guildID := helpers.GetGuildIDForChannel(msg.ChannelID)
	if guildID == "" {
		return "", helpers.DefaultLanguage
	}

	lang := helpers.GetUserLanguage(guildID, msg.Author.ID)
	if lang == "" {
		lang = helpers.DefaultLanguage
	}

	return guildID, lang
}
