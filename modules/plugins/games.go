package plugins

import (
	"strconv"
	"strings"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/models"
	"github.com/bwmarrin/discordgo"
)

type Games struct{}

func (g *Games) Commands() []string {
	return []string{
		"addgame",
		"removegame",
		"updategame",
		"listgames",
		"games",
		"setgameemoji",
		"setgameroles",
	}
}

func (g *Games) Init(session *discordgo.Session) {
}

func (g *Games) Action(command string, content string, msg *discordgo.Message, session *discordgo.Session) {
	guildID, lang := guildAndLang(msg)
	if guildID == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "bot.guild_only"))
		return
	}

	switch command {
	case "addgame":
		helpers.RequireGameManagement(msg, func() {
			g.actionAdd(guildID, lang, content, msg)
		})
	case "removegame":
		helpers.RequireGameManagement(msg, func() {
			g.actionRemove(guildID, lang, content, msg)
		})
	case "updategame":
		helpers.RequireGameManagement(msg, func() {
			g.actionUpdate(guildID, lang, content, msg)
		})
	case "listgames", "games":
		g.actionList(guildID, lang, msg)
	case "setgameemoji":
		helpers.RequireGameManagement(msg, func() {
			g.actionSetEmoji(guildID, lang, content, msg)
		})
	case "setgameroles":
		helpers.RequireAdmin(msg, func() {
			g.actionSetRoles(guildID, lang, content, msg)
		})
	}
}

// addgame Mario Kart | 2 | 8 | 🏎️ | https://example.com
func (g *Games) actionAdd(guildID string, lang string, content string, msg *discordgo.Message) {
	parts := strings.Split(content, "|")
	if len(parts) < 3 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.add_usage"))
		return
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	minPlayers, errMin := strconv.Atoi(parts[1])
	maxPlayers, errMax := strconv.Atoi(parts[2])
	if errMin != nil || errMax != nil || minPlayers < 1 || minPlayers > maxPlayers {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.invalid_players"))
		return
	}

	game := models.Game{
		Name:       parts[0],
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
	}
	if len(parts) > 3 {
		game.Emoji = parts[3]
	}
	if len(parts) > 4 {
		game.StoreLinks = parts[4]
	}

	_, err := helpers.AddGame(guildID, game)
	if err == helpers.ErrGameExists {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.exists", game.Name))
		return
	}
	helpers.Relax(err)

	cache.GetLogger().WithField("module", "games").Info(
		"game " + game.Name + " added on " + guildID + " by " + msg.Author.Username)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.added", game.DisplayEmoji(), game.Name))
}

func (g *Games) actionRemove(guildID string, lang string, content string, msg *discordgo.Message) {
	arg := strings.TrimSpace(content)
	if arg == "" {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.remove_usage"))
		return
	}

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	key, game, err := helpers.ResolveGame(games, arg)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.not_found", arg))
		return
	}

	err = helpers.RemoveGameFromServer(guildID, key)
	helpers.Relax(err)

	cache.GetLogger().WithField("module", "games").Info(
		"game " + game.Name + " removed from " + guildID + " by " + msg.Author.Username)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.removed", game.Name))
}

// updategame <game> name="New Name" min=2 max=6 emoji=🎲 links=https://example.com
func (g *Games) actionUpdate(guildID string, lang string, content string, msg *discordgo.Message) {
	fields := strings.Fields(content)
	if len(fields) < 2 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.update_usage"))
		return
	}

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	// the game argument is everything before the first key=value token
	split := len(fields)
	for i, field := range fields {
		if strings.Contains(field, "=") {
			split = i
			break
		}
	}
	if split == 0 || split == len(fields) {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.update_usage"))
		return
	}

	gameArg := strings.Join(fields[:split], " ")
	key, game, err := helpers.ResolveGame(games, gameArg)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.not_found", gameArg))
		return
	}

	values := helpers.ParseKeyValueString(strings.Join(fields[split:], " "))

	var update helpers.GameUpdate
	for field, value := range values {
		value := value
		switch field {
		case "name":
			update.Name = &value
		case "min", "min_players":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.invalid_players"))
				return
			}
			update.MinPlayers = &parsed
		case "max", "max_players":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.invalid_players"))
				return
			}
			update.MaxPlayers = &parsed
		case "emoji":
			update.Emoji = &value
		case "links", "store_links":
			update.StoreLinks = &value
		default:
			helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.unknown_field", field))
			return
		}
	}

	changed, err := helpers.UpdateGame(guildID, key, update)
	if err == helpers.ErrGameExists {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.exists", values["name"]))
		return
	}
	helpers.Relax(err)

	if len(changed) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.nothing_changed"))
		return
	}

	cache.GetLogger().WithField("module", "games").Info(
		"game " + game.Name + " updated on " + guildID + " by " + msg.Author.Username +
			", changed: " + strings.Join(changed, ", "))

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(
		lang, "games.updated", game.Name, strings.Join(changed, ", ")))
}

func (g *Games) actionList(guildID string, lang string, msg *discordgo.Message) {
	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	if len(games) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.none"))
		return
	}

	var lines []string
	for _, kg := range sortedByID(games) {
		line := kg.Game.DisplayEmoji() + " **[" + strconv.Itoa(kg.Game.ID) + "] " + kg.Game.Name + "** - " +
			helpers.GetTextLangF(lang, "games.players_range", kg.Game.MinPlayers, kg.Game.MaxPlayers)
		if kg.Game.StoreLinks != "" {
			line += "\n   🔗 " + kg.Game.StoreLinks
		}
		lines = append(lines, line)
	}

	helpers.SendEmbed(msg.ChannelID, &discordgo.MessageEmbed{
		Title:       helpers.GetTextLang(lang, "games.list_title"),
		Description: strings.Join(lines, "\n"),
	})
}

// setgameemoji <game> <emoji>
func (g *Games) actionSetEmoji(guildID string, lang string, content string, msg *discordgo.Message) {
	fields := strings.Fields(content)
	if len(fields) < 2 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.emoji_usage"))
		return
	}

	games, err := helpers.LoadGames(guildID)
	helpers.Relax(err)

	emoji := fields[len(fields)-1]
	gameArg := strings.Join(fields[:len(fields)-1], " ")

	key, game, err := helpers.ResolveGame(games, gameArg)
	if err != nil {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.not_found", gameArg))
		return
	}

	_, err = helpers.UpdateGame(guildID, key, helpers.GameUpdate{Emoji: &emoji})
	helpers.Relax(err)

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.emoji_set", emoji, game.Name))
}

// setgameroles @role @role, no arguments clears the list
func (g *Games) actionSetRoles(guildID string, lang string, content string, msg *discordgo.Message) {
	settings := helpers.GuildSettingsGetCached(guildID)

	roleIDs := make([]string, 0, len(msg.MentionRoles))
	roleIDs = append(roleIDs, msg.MentionRoles...)
	for _, field := range strings.Fields(content) {
		if _, err := strconv.ParseUint(field, 10, 64); err == nil {
			roleIDs = append(roleIDs, field)
		}
	}

	settings.GameManagementRoles = roleIDs

	err := helpers.GuildSettingsSet(guildID, settings)
	helpers.Relax(err)

	if len(roleIDs) == 0 {
		helpers.SendMessage(msg.ChannelID, helpers.GetTextLang(lang, "games.roles_cleared"))
		return
	}

	helpers.SendMessage(msg.ChannelID, helpers.GetTextLangF(lang, "games.roles_set", len(roleIDs)))
}
