package helpers

import (
	"fmt"
	"math/rand"

	"github.com/Jeffail/gabs"
)

const DefaultLanguage = "en"

var translations *gabs.Container

func LoadTranslations(path string) {
	json, err := gabs.ParseJSONFile(path)
	Relax(err)

	translations = json
}

// GetTextLang looks up $id in the $lang catalog, falling back to the
// default language, then to the id itself.
func GetTextLang(lang string, id string) string {
	if translations == nil {
		return id
	}

	path := lang + "." + id
	if !translations.ExistsP(path) {
		if lang == DefaultLanguage {
			return id
		}
		return GetTextLang(DefaultLanguage, id)
	}

	item := translations.Path(path)

	switch data := item.Data().(type) {
	case string:
		return data
	case map[string]interface{}:
		// objects carry their default text under __
		if text, ok := data["__"].(string); ok {
			return text
		}
		return id
	case []interface{}:
		// arrays hold variants, pick one at random
		if len(data) == 0 {
			return id
		}
		if text, ok := data[rand.Intn(len(data))].(string); ok {
			return text
		}
		return id
	default:
		return id
	}
}

func GetText(id string) string {
	return GetTextLang(DefaultLanguage, id)
}

func GetTextF(id string, replacements ...interface{}) string {
	return fmt.Sprintf(GetText(id), replacements...)
}

func GetTextLangF(lang string, id string, replacements ...interface{}) string {
	return fmt.Sprintf(GetTextLang(lang, id), replacements...)
}
