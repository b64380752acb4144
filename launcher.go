package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/logging"
	"github.com/Zero-for-One/TatiBot/metrics"
	"github.com/Zero-for-One/TatiBot/scheduler"
	"github.com/Zero-for-One/TatiBot/version"
	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/raven-go"
	"github.com/kz/discordrus"
	"github.com/sirupsen/logrus"
)

var BotRuntimeChannel chan os.Signal

// Entrypoint
func main() {
	var err error

	log := logrus.New()
	log.Out = os.Stdout
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339}
	log.Hooks = make(logrus.LevelHooks)
	cache.SetLogger(log)

	// Read config
	helpers.LoadConfig("config.json")
	config := helpers.GetConfig()

	// Check if the bot is being debugged
	if debug, ok := config.Path("debug").Data().(bool); ok && debug {
		helpers.DEBUG_MODE = true
	}

	// Point the storage layer at the data directories
	helpers.SetDataDir(helpers.ConfigPathString("storage.data_dir", "data"))
	helpers.SetLogsDir(helpers.ConfigPathString("storage.logs_dir", "logs"))

	fileHook, err := logging.NewDatedFileHook(helpers.GetLogsDir())
	if err != nil {
		log.WithField("module", "launcher").Error("logrus file hook failed, err:", err.Error())
	} else {
		log.Hooks.Add(fileHook)
	}

	if helpers.ConfigPathString("logging.discord_webhook", "") != "" {
		log.Hooks.Add(discordrus.NewHook(
			helpers.ConfigPathString("logging.discord_webhook", ""),
			logrus.ErrorLevel,
			&discordrus.Opts{
				Username:           "Logging",
				DisableTimestamp:   false,
				TimestampFormat:    "Jan 2 15:04:05.00000",
				EnableCustomColors: true,
				CustomLevelColors: &discordrus.LevelColors{
					Error: 13631488,
					Panic: 13631488,
					Fatal: 13631488,
				},
			},
		))
	}

	log.WithField("module", "launcher").Info("Booting TatiBot...")

	// Read i18n
	helpers.LoadTranslations(helpers.ConfigPathString("i18n.file", "_assets/i18n.json"))

	// Show version
	version.DumpInfo()

	// Start metric server
	metrics.Init()

	// Make the randomness more random
	rand.Seed(time.Now().UTC().UnixNano())

	// Call home
	if dsn := helpers.ConfigPathString("sentry", ""); dsn != "" {
		log.WithField("module", "launcher").Info("[SENTRY] Calling home...")
		err = raven.SetDSN(dsn)
		if err != nil {
			panic(err)
		}
		if version.BOT_VERSION != "UNSET" {
			raven.SetRelease(version.BOT_VERSION)
		}
		log.WithField("module", "launcher").Info("[SENTRY] Someone picked up the phone \\^-^/")
	}

	// Connect and add event handlers
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		pc, file, line, _ := runtime.Caller(caller)

		files := strings.Split(file, "/")
		file = files[len(files)-1]

		name := runtime.FuncForPC(pc).Name()
		fns := strings.Split(name, ".")
		name = fns[len(fns)-1]

		msg := format
		if strings.Contains(msg, "%") {
			msg = fmt.Sprintf(format, a...)
		}

		switch msgL {
		case discordgo.LogError:
			log.WithField("module", "discordgo").Errorf("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogWarning:
			log.WithField("module", "discordgo").Warnf("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogInformational:
			log.WithField("module", "discordgo").Infof("%s:%d:%s() %s", file, line, name, msg)
		case discordgo.LogDebug:
			log.WithField("module", "discordgo").Debugf("%s:%d:%s() %s", file, line, name, msg)
		}
	}

	log.WithField("module", "launcher").Info("Connecting TatiBot to discord...")
	discord, err := discordgo.New("Bot " + helpers.ConfigPathString("discord.token", ""))
	if err != nil {
		panic(err)
	}

	discord.Lock()
	discord.Debug = false
	discord.LogLevel = discordgo.LogInformational
	discord.StateEnabled = true
	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
	discord.Unlock()

	discord.AddHandler(BotOnReady)
	discord.AddHandler(BotOnMessageCreate)
	discord.AddHandlerOnce(metrics.OnReady)
	discord.AddHandler(metrics.OnMessageCreate)

	// Connect to discord
	err = discord.Open()
	if err != nil {
		raven.CaptureErrorAndWait(err, nil)
		panic(err)
	}

	// Make a channel that waits for a os signal
	BotRuntimeChannel = make(chan os.Signal, 1)
	signal.Notify(BotRuntimeChannel, os.Interrupt, syscall.SIGTERM)

	// Wait until the os wants us to shutdown
	<-BotRuntimeChannel

	log.WithField("module", "launcher").Info("TatiBot is stopping")
	log.WithField("module", "launcher").Info("Stopping scheduler...")
	scheduler.Stop()
	log.WithField("module", "launcher").Info("Disconnecting bot discord session...")
	discord.Close()
}
