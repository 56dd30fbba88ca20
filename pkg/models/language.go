package models

// Language selects the UI locale. It only gates translation lookup in the
// clients; the core stores the token as-is.
type Language string

const (
	LanguageEnglish Language = "ENGLISH"
	LanguageTagalog Language = "TAGALOG"
	LanguageBisaya  Language = "BISAYA"
)

// DefaultLanguage is used when no selection has been persisted.
const DefaultLanguage = LanguageEnglish

// Valid reports whether l is a known language token.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageTagalog, LanguageBisaya:
		return true
	}
	return false
}
