package plugins

import (
	"strconv"
	"strings"

	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/bwmarrin/discordgo"
)

type Results struct{}

func (r *Results) Commands() []string {
	return []string{
		"results",
	}
}

func (r *Results) Init(session *discordgo.Session) {
}

func (r *Results) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	votes, err := helpers.LoadVotes(guildID)
	helpers.Relax(err)

	if len(votes) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "results.no_votes"))
		return
	}

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	rec := helpers.Recommend(games, votes)

	embed := &discordgo.MessageEmbed{
		Title:       helpers.GetTextLang(lang, "results.title"),
		Description: helpers.GetTextLangF(lang, "results.available_players", rec.AvailablePlayers),
	}

	if rec.Winner == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  helpers.GetTextLang(lang, "results.no_compatible"),
			Value: helpers.GetTextLangF(lang, "results.no_compatible_desc", rec.AvailablePlayers),
		})
		if lines := scoreLines(lang, rec.Scores, ""); lines != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  helpers.GetTextLang(lang, "results.all_games"),
				Value: lines,
			})
		}
		helpers.SendEmbed(msg.ChannelID, embed)
		return
	}

	winner := rec.Winner
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: helpers.GetTextLang(lang, "results.recommended"),
		Value: winner.Game.DisplayEmoji() + " **" + winner.Game.Name + "**\n" +
			helpers.GetTextLangF(lang, "results.recommended_score", winner.Score) + "\n" +
			helpers.GetTextLangF(lang, "games.players_range", winner.Game.MinPlayers, winner.Game.MaxPlayers),
	})

	if lines := scoreLines(lang, rec.Compatible, winner.Key); lines != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  helpers.GetTextLang(lang, "results.compatible"),
			Value: lines,
		})
	}

	if len(rec.Voters) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  helpers.GetTextLang(lang, "results.voters"),
			Value: strings.Join(rec.Voters, ", "),
		})
	}

	helpers.SendEmbed(msg.ChannelID, embed)
}

func scoreLines(lang string, scores []helpers.GameScore, winnerKey string) string {
	var lines []string
	for _, gs := range scores {
		marker := "•"
		if gs.Key == winnerKey {
			marker = "🏆"
		}
		lines = append(lines, marker+" "+gs.Game.DisplayEmoji()+" **"+gs.Game.Name+"** - "+
			helpers.GetTextLangF(lang, "results.points", gs.Score)+
			" ("+strconv.Itoa(gs.Game.MinPlayers)+"-"+strconv.Itoa(gs.Game.MaxPlayers)+")")
	}
	return strings.Join(lines, "\n")
}
