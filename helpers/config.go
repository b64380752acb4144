package helpers

import "github.com/Jeffail/gabs"

// config saves the bot-config
var config *gabs.Container

// LoadConfig loads the config from $path into $config
func LoadConfig(path string) {
	json, err := gabs.ParseJSONFile(path)

	if err != nil {
		panic(err)
	}

	config = json
}

// GetConfig is a config getter
func GetConfig() *gabs.Container {
	return config
}

// ConfigPathString reads a string value from the bot-config, returning
// fallback when the path is missing or not a string.
func ConfigPathString(path string, fallback string) string {
	if config == nil {
		return fallback
	}

	value, ok := config.Path(path).Data().(string)
	if !ok {
		return fallback
	}

	return value
}
