package plugins

import (
	"strconv"
	"strings"

	"github.com/Zero-for-One/TatiBot/emojis"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/metrics"
	"github.com/Zero-for-One/TatiBot/models"
	"github.com/bwmarrin/discordgo"
)

type Voting struct{}

func (v *Voting) Commands() []string {
	return []string{
		"vote",
		"myvotes",
		"available",
		"unavailable",
		"restorevotes",
	}
}

func (v *Voting) Init(session *discordgo.Session) {
}

func (v *Voting) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	switch command {
	case "vote":
		v.actionVote(guildID, lang, content, msg)
	case "myvotes":
		v.actionMyVotes(guildID, lang, msg)
	case "available":
		v.actionAvailability(guildID, lang, msg, false)
	case "unavailable":
		v.actionAvailability(guildID, lang, msg, true)
	case "restorevotes":
		v.actionRestore(guildID, lang, msg)
	}
}

func (v *Voting) actionVote(guildID string, lang string, content string, msg *discordgo.Message) {
	args := strings.Fields(content)
	if len(args) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.usage"))
		return
	}

	// trailing number is the rating, omitting it means full marks
	rating := models.MaxRating
	gameArgs := args
	if parsed, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 1 {
		if parsed < models.MinRating || parsed > models.MaxRating {
			helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.invalid_rating"))
			return
		}
		rating = parsed
		gameArgs = args[:len(args)-1]
	}

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	gameArg := strings.Join(gameArgs, " ")
	key, game, err := helpers.ResolveGame(games, gameArg)
	if err != nil {
		reply := helpers.GetTextLangF(lang, "games.not_found", gameArg)
		if suggestion := helpers.SuggestGame(games, gameArg); suggestion != "" {
			reply += "\n" + helpers.GetTextLangF(lang, "games.did_you_mean", suggestion)
		}
		helpers.SendMessage(msg.ChannelID, reply)
		return
	}

	err = helpers.SetRating(guildID, msg.Author.ID, msg.Author.Username, key, rating)
	helpers.Relax(err)

	metrics.VotesCast.Add(1)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "votes.recorded",
		game.DisplayEmoji(), game.Name, emojis.Stars(rating),
	))
}

func (v *Voting) actionMyVotes(guildID string, lang string, msg *discordgo.Message) {
	votes, err := helpers.LoadVotes(guildID)
	helpers.Relax(err)

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	entry, ok := votes[msg.Author.ID]
	if !ok || len(entry.Votes) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.none_yet"))
		return
	}

	var lines []string
	for _, gs := range sortedByID(games) {
		rating, voted := entry.Votes[gs.Key]
		if !voted {
			continue
		}
		lines = append(lines, gs.Game.DisplayEmoji()+" **"+gs.Game.Name+"** "+emojis.Stars(rating))
	}

	if len(lines) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.none_yet"))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       helpers.GetTextLangF(lang, "votes.my_votes_title", msg.Author.Username),
		Description: strings.Join(lines, "\n"),
	}
	if entry.Unavailable {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: helpers.GetTextLang(lang, "votes.marked_unavailable")}
	}

	helpers.SendEmbed(msg.ChannelID, embed)
}

func (v *Voting) actionAvailability(guildID string, lang string, msg *discordgo.Message, unavailable bool) {
	err := helpers.SetAvailability(guildID, msg.Author.ID, msg.Author.Username, unavailable)
	if err == helpers.ErrAlreadyInState {
		if unavailable {
			helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.already_unavailable"))
		} else {
			helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.already_available"))
		}
		return
	}
	helpers.Relax(err)

	if unavailable {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.now_unavailable"))
	} else {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.now_available"))
	}
}

func (v *Voting) actionRestore(guildID string, lang string, msg *discordgo.Message) {
	keys, err := helpers.LoadServerGameList(guildID)
	helpers.Relax(err)

	restored, date, err := helpers.RestoreFromBackup(guildID, msg.Author.ID, msg.Author.Username, keys)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.no_backup"))
		return
	}

	if restored == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "votes.restore_no_match"))
		return
	}

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "votes.restored", restored, date,
	))
}
