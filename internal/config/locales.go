package config

const (
	LangEN = "en"
	LangES = "es"
)

// NormalizeLanguage maps the comment_language input onto a supported locale,
// falling back to English for anything unrecognized.
func NormalizeLanguage(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		return LangEN
	}
}
