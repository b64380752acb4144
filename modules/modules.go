package modules

import (
	"github.com/Zero-for-One/TatiBot/modules/plugins"
)

var (
	pluginCache map[string]*Plugin

	PluginList = []Plugin{
		&plugins.Voting{},
		&plugins.Games{},
		&plugins.Results{},
		&plugins.Config{},
		&plugins.Schedule{},
		&plugins.Admin{},
		&plugins.Language{},
	}
)
