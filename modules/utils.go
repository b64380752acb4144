package modules

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Zero-for-One/TatiBot/cache"
	"github.com/Zero-for-One/TatiBot/helpers"
	"github.com/Zero-for-One/TatiBot/metrics"
	"github.com/Zero-for-One/TatiBot/ratelimits"
	"github.com/bwmarrin/discordgo"
)

// Init warms the caches and initializes the plugins
func Init(session *discordgo.Session) {
	checkDuplicateCommands()

	pluginCount := len(PluginList)
	pluginCache = make(map[string]*Plugin)

	logTemplate := "[PLUG] %s reacts to [ %s]"
	listeners := ""

	for i := 0; i < pluginCount; i++ {
		ref := &PluginList[i]

		for _, cmd := range (*ref).Commands() {
			pluginCache[cmd] = ref
			listeners += cmd + " "
		}

		cache.GetLogger().WithField("module", "modules").Info(fmt.Sprintf(
			logTemplate,
			helpers.Typeof(*ref),
			listeners,
		))
		listeners = ""

		(*ref).Init(session)
	}

	cache.GetLogger().WithField("module", "modules").Info(
		"Initializer finished. Loaded " + strconv.Itoa(len(PluginList)) + " plugins",
	)
}

// CommandList returns every registered command, used by the help output
func CommandList() []string {
	commands := make([]string, 0, len(pluginCache))
	for cmd := range pluginCache {
		commands = append(commands, cmd)
	}
	return commands
}

// command - The command that triggered this execution
// content - The content without command
// msg     - The message object
func CallBotPlugin(command string, content string, msg *discordgo.Message) {
	// Defer a recovery in case anything panics
	defer helpers.RecoverDiscord(msg)

	// Consume a key for this action
	ratelimits.Container.Drain(1, msg.Author.ID)

	// Track metrics
	metrics.CommandsExecuted.Add(1)

	// Call the module
	if ref, ok := pluginCache[command]; ok {
		(*ref).Action(command, content, msg, cache.GetSession())
	}
}

func checkDuplicateCommands() {
	cmds := make(map[string]string)

	for _, plug := range PluginList {
		for _, cmd := range plug.Commands() {
			t := helpers.Typeof(plug)

			if occupant, ok := cmds[cmd]; ok {
				cache.GetLogger().WithField("module", "modules").Error("Failed to load " + t + " because '" + cmd + "' was already registered by " + occupant)
				os.Exit(1)
			}

			cmds[cmd] = t
		}
	}
}
