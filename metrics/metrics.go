package metrics

import (
	"expvar"
	"net/http"
	"runtime"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/bwmarrin/discordgo"
)

var (
	// MessagesReceived counts all ever received messages
	MessagesReceived = expvar.NewInt("messages_received")

	// UserCount counts all logged-in users
	UserCount = expvar.NewInt("user_count")

	// ChannelCount counts all watching channels
	ChannelCount = expvar.NewInt("channel_count")

	// GuildCount counts all joined guilds
	GuildCount = expvar.NewInt("guild_count")

	// CommandsExecuted increases after each command execution
	CommandsExecuted = expvar.NewInt("commands_executed")

	// VotesCast increases after each stored game rating
	VotesCast = expvar.NewInt("votes_cast")

	// RemindersSent increases after each scheduled reminder
	RemindersSent = expvar.NewInt("reminders_sent")

	// VoteResets increases after each weekly vote reset run
	VoteResets = expvar.NewInt("vote_resets")

	// CoroutineCount counts all running coroutines
	CoroutineCount = expvar.NewInt("coroutine_count")

	// Uptime stores the timestamp of the bot's boot
	Uptime = expvar.NewInt("uptime")
)

// Init starts a http server on $metrics_ip:1337
func Init() {
	cache.GetLogger().WithField("module", "metrics").Info("Listening on TCP/1337")
	Uptime.Set(time.Now().Unix())
	go http.ListenAndServe(helpers.ConfigPathString("metrics_ip", "127.0.0.1")+":1337", nil)
}

// OnReady listens for said discord event
func OnReady(session *discordgo.Session, event *discordgo.Ready) {
	go CollectDiscordMetrics(session)
	go CollectRuntimeMetrics()
}

// OnMessageCreate listens for said discord event
func OnMessageCreate(session *discordgo.Session, event *discordgo.MessageCreate) {
	MessagesReceived.Add(1)
}

// CollectDiscordMetrics counts Guilds, Channels and Users
func CollectDiscordMetrics(session *discordgo.Session) {
	for {
		time.Sleep(15 * time.Second)

		users := make(map[string]string)
		channels := 0
		guilds := session.State.Guilds

		for _, guild := range guilds {
			channels += len(guild.Channels)

			for _, u := range guild.Members {
				users[u.User.ID] = u.User.Username
			}
		}

		UserCount.Set(int64(len(users)))
		ChannelCount.Set(int64(channels))
		GuildCount.Set(int64(len(guilds)))
	}
}

// CollectRuntimeMetrics counts all running coroutines
func CollectRuntimeMetrics() {
	for {
		time.Sleep(15 * time.Second)
		CoroutineCount.Set(int64(runtime.NumGoroutine()))
	}
}
