// Package locale handles the site's language concerns: deriving per-language
// slugs for posts and negotiating a language for incoming requests.
package locale

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// QueryParam selects a language explicitly, e.g. /?lang=fr.
	QueryParam = "lang"
	// CookieName stores the visitor's language preference.
	CookieName = "beeola_lang"
)

// Set holds the site's supported languages and matches requests against them.
// The default language is always a member, and always first.
type Set struct {
	tags    []language.Tag
	codes   []string
	matcher language.Matcher
}

// NewSet builds a Set from language codes. Codes that fail to parse are
// skipped; the default language is prepended if missing.
func NewSet(codes []string) Set {
	seen := map[string]bool{DefaultLanguage: true}
	tags := []language.Tag{language.Make(DefaultLanguage)}
	out := []string{DefaultLanguage}
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		tag, err := language.Parse(c)
		if err != nil {
			continue
		}
		seen[c] = true
		tags = append(tags, tag)
		out = append(out, c)
	}
	return Set{tags: tags, codes: out, matcher: language.NewMatcher(tags)}
}

// Codes returns the supported language codes, default first.
func (s Set) Codes() []string {
	return s.codes
}

// Default returns the default language tag.
func (s Set) Default() language.Tag {
	return s.tags[0]
}

// Parse returns the supported code matching the given value, if any.
func (s Set) Parse(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	for i, t := range s.tags {
		if t == tag {
			return s.codes[i], true
		}
	}
	return "", false
}

// Resolve determines the best language code for the request: explicit query
// param first, then the preference cookie, then Accept-Language negotiation,
// falling back to the default. The bool reports whether the choice came from
// the query param and should be persisted as a cookie.
func (s Set) Resolve(r *http.Request) (string, bool) {
	if r == nil {
		return DefaultLanguage, false
	}
	if v := r.URL.Query().Get(QueryParam); v != "" {
		if code, ok := s.Parse(v); ok {
			return code, true
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if code, ok := s.Parse(cookie.Value); ok {
			return code, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if prefs, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, idx, conf := s.matcher.Match(prefs...)
			if conf > language.No {
				return s.codes[idx], false
			}
		}
	}
	return DefaultLanguage, false
}

// SetCookie persists the language choice on the response.
func SetCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    code,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}
