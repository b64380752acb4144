package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/metrics"
	"github.com/Zero-for-One/TatiBot/modules"
	"github.com/Zero-for-One/TatiBot/ratelimits"
	"github.com/Zero-for-One/TatiBot/scheduler"
	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/raven-go"
)

// BotOnReady gets called after the gateway connected
func BotOnReady(session *discordgo.Session, event *discordgo.Ready) {
	log := cache.GetLogger()

	log.WithField("module", "bot").Info("Connected to discord!")
	log.WithField("module", "bot").Info("Invite link: " + fmt.Sprintf(
		"https://discordapp.com/oauth2/authorize?client_id=%s&scope=bot&permissions=%s",
		helpers.ConfigPathString("discord.id", ""),
		helpers.ConfigPathString("discord.perms", "0"),
	))

	// Cache the session
	cache.SetSession(session)

	// Load and init all modules
	modules.Init(session)

	// Run ratelimiter
	ratelimits.Container.Init()

	// Start the recurring jobs
	scheduler.Init()

	// Run async status updater
	go updateStatusInterval(session)
}

// BotOnMessageCreate gets called after a new message was sent
// This will be called after *every* message on *every* server so it should die as soon as possible
// or spawn costly work inside of coroutines.
func BotOnMessageCreate(session *discordgo.Session, message *discordgo.MessageCreate) {
	// Ignore other bots and @everyone/@here
	if message.Author.Bot || message.MentionEveryone {
		return
	}

	// Get the channel
	// Ignore the event if we cannot resolve the channel
	channel, err := cache.GetSession().Channel(message.ChannelID)
	if err != nil {
		go raven.CaptureError(err, map[string]string{})
		return
	}

	// Guild data is all keyed by guild, DMs only get pointed at a server.
	// Only answer DMs that look like a command attempt, plain chatter is ignored.
	if channel.Type == discordgo.ChannelTypeDM {
		if looksLikeCommand(session, message) {
			session.ChannelMessageSend(message.ChannelID, helpers.GetText("bot.no_dm"))
		}
		return
	}

	// Check if the message contains @mentions for us
	if strings.HasPrefix(message.Content, "<@") && len(message.Mentions) > 0 && message.Mentions[0].ID == session.State.User.ID {
		// Consume a key for this action
		e := ratelimits.Container.Drain(1, message.Author.ID)
		if e != nil {
			return
		}

		msg := strings.TrimSpace(strings.Replace(message.Content, "<@"+session.State.User.ID+">", "", -1))

		task := ""
		if fields := strings.Fields(msg); len(fields) > 0 {
			task = strings.ToLower(fields[0])
		}

		switch task {
		case "help":
			metrics.CommandsExecuted.Add(1)
			sendHelp(message)
		case "prefix":
			metrics.CommandsExecuted.Add(1)
			prefix := helpers.GetPrefixForServer(channel.GuildID)
			cache.GetSession().ChannelMessageSend(
				channel.ID,
				helpers.GetTextF("bot.prefix.is", prefix),
			)
		default:
			sendHelp(message)
		}
		return
	}

	prefix := helpers.GetPrefixForServer(channel.GuildID)
	if prefix == "" {
		return
	}

	// Check if the message is prefixed for us
	// If not exit
	if !strings.HasPrefix(message.Content, prefix) {
		return
	}

	// Check if the user is allowed to request commands
	if !ratelimits.Container.HasKeys(message.Author.ID) && !helpers.IsBotAdmin(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, helpers.GetTextF("bot.ratelimit.hit", message.Author.ID))

		ratelimits.Container.Set(message.Author.ID, -1)
		return
	}

	// Split the message into parts
	parts := strings.Fields(message.Content)

	// Save a sanitized version of the command (no prefix)
	cmd := strings.Replace(parts[0], prefix, "", 1)

	// Check if the user calls for help
	if cmd == "h" || cmd == "help" {
		metrics.CommandsExecuted.Add(1)
		sendHelp(message)
		return
	}

	// Separate arguments from the command
	content := strings.TrimSpace(strings.Replace(message.Content, prefix+cmd, "", 1))

	// Log commands
	cache.GetLogger().WithField("module", "bot").Debug(fmt.Sprintf("%s (#%s) on %s: %s",
		message.Author.Username, message.Author.ID, channel.GuildID, message.Content))

	// Check if a module matches said command
	modules.CallBotPlugin(cmd, content, message.Message)
}

func looksLikeCommand(session *discordgo.Session, message *discordgo.MessageCreate) bool {
	if strings.HasPrefix(message.Content, helpers.ConfigPathString("discord.prefix", "!")) {
		return true
	}
	return len(message.Mentions) > 0 && message.Mentions[0].ID == session.State.User.ID
}

func sendHelp(message *discordgo.MessageCreate) {
	guildID := helpers.GetGuildIDForChannel(message.ChannelID)
	prefix := helpers.GetPrefixForServer(guildID)

	commands := modules.CommandList()
	sort.Strings(commands)

	cache.GetSession().ChannelMessageSend(
		message.ChannelID,
		helpers.GetTextF("bot.help", prefix, prefix+strings.Join(commands, ", "+prefix)),
	)
}

// Updates the bot status every hour after called
func updateStatusInterval(session *discordgo.Session) {
	for {
		guilds := session.State.Guilds

		err := session.UpdateGameStatus(0, fmt.Sprintf("game night on %d servers | @me help", len(guilds)))
		if err != nil {
			raven.CaptureError(err, map[string]string{})
		}

		time.Sleep(1 * time.Hour)
	}
}
