// Package localize translates categorical labels and UI strings between English and German.
package localize

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language.
type Language string

// Supported languages.
const (
	English Language = "en"
	German  Language = "de"
)

var englishBase, _ = language.English.Base()

// ResolveLanguage maps a language code to a supported language.
// English tags (en, en-GB, ...) resolve to English; any other code, including
// unparsable ones, resolves to German.
func ResolveLanguage(code string) Language {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return German
	}
	if base, _ := tag.Base(); base == englishBase {
		return English
	}
	return German
}
