package models

// LanguageCode is a closed set of UI languages for localized display strings
type LanguageCode string

const (
	LanguageEN LanguageCode = "en"
	LanguageRU LanguageCode = "ru"
	LanguageES LanguageCode = "es"
	LanguageDE LanguageCode = "de"
)

// SupportedLanguages lists every language the catalog and cards may carry
var SupportedLanguages = []LanguageCode{LanguageEN, LanguageRU, LanguageES, LanguageDE}

// ParseLanguage maps a raw language tag to a supported code, defaulting to English.
func ParseLanguage(raw string) LanguageCode {
	for _, lang := range SupportedLanguages {
		if string(lang) == raw {
			return lang
		}
	}
	return LanguageEN
}

// LocalizedName resolves a display string with the fallback chain
// requested language -> English -> canonical name.
func LocalizedName(names map[LanguageCode]string, lang LanguageCode, canonical string) string {
	if name, ok := names[lang]; ok && name != "" {
		return name
	}
	if name, ok := names[LanguageEN]; ok && name != "" {
		return name
	}
	return canonical
}
