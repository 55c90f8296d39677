package normalize

import "strings"

// validLanguages is the recognized BCP-47 subset. Codes outside it are
// dropped rather than guessed.
var validLanguages = map[string]struct{}{
	"en":    {},
	"es":    {},
	"fr":    {},
	"pt-br": {},
	"de":    {},
	"it":    {},
}

// languageAliases maps the 3-letter codes sources occasionally emit.
var languageAliases = map[string]string{
	"eng": "en",
	"spa": "es",
}

// NormalizeLanguage lowercases and trims a raw language code and accepts it
// only if it lands in the recognized set.
func NormalizeLanguage(raw string) *string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return nil
	}

	if alias, ok := languageAliases[lang]; ok {
		lang = alias
	}
	if _, ok := validLanguages[lang]; ok {
		return &lang
	}
	return nil
}
