package views

import (
	"time"

	beeola "github.com/gbozee/beeola.me"
	"github.com/gbozee/beeola.me/locale"
)

// LanguageLink is one entry of a post's language switcher.
type LanguageLink struct {
	Code   string
	Label  string
	Href   string
	Active bool
}

// languageNames maps language codes to their self-names for switcher labels.
var languageNames = map[string]string{
	"en":    "English",
	"fr":    "Français",
	"ru":    "Русский",
	"es":    "Español",
	"pt-br": "Português do Brasil",
	"de":    "Deutsch",
	"it":    "Italiano",
	"ja":    "日本語",
	"ko":    "한국어",
	"zh":    "中文",
}

// LanguageLabel returns a human-readable label for a language code.
func LanguageLabel(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// LanguageLinks builds the switcher entries for a post available in the
// given translations. Each href comes from the slug localizer configured
// with the post's current language-tagged slug.
func LanguageLinks(slug, lang string, translations []string) []LanguageLink {
	loc := locale.NewLocalizer(beeola.LangSlug(slug, lang), lang)
	links := make([]LanguageLink, 0, len(translations))
	for _, t := range translations {
		links = append(links, LanguageLink{
			Code:   t,
			Label:  LanguageLabel(t),
			Href:   "/blog/" + loc.For(t) + "/",
			Active: t == lang,
		})
	}
	return links
}

// FormatDate renders a YYYY-MM-DD date for bylines; unparseable input is
// passed through unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
