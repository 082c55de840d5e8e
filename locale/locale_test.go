package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewSetKeepsDefaultFirst(t *testing.T) {
	s := NewSet([]string{"fr", "ru"})
	codes := s.Codes()
	if len(codes) != 3 || codes[0] != "en" || codes[1] != "fr" || codes[2] != "ru" {
		t.Fatalf("Codes() = %v, want [en fr ru]", codes)
	}
}

func TestNewSetSkipsInvalidAndDuplicateCodes(t *testing.T) {
	s := NewSet([]string{"en", "fr", "fr", "not a tag!", ""})
	codes := s.Codes()
	if len(codes) != 2 || codes[0] != "en" || codes[1] != "fr" {
		t.Fatalf("Codes() = %v, want [en fr]", codes)
	}
}

func TestParse(t *testing.T) {
	s := NewSet([]string{"fr"})
	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{"fr", "fr", true},
		{"en", "en", true},
		{"ru", "", false},
		{"", "", false},
		{"garbage!!", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Parse(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolvePrefersQueryParam(t *testing.T) {
	s := NewSet([]string{"fr", "ru"})
	r := httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "fr"})
	code, persist := s.Resolve(r)
	if code != "ru" {
		t.Errorf("Resolve = %q, want ru", code)
	}
	if !persist {
		t.Error("query param choice should be persisted")
	}
}

func TestResolveFallsBackToCookie(t *testing.T) {
	s := NewSet([]string{"fr"})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "fr"})
	code, persist := s.Resolve(r)
	if code != "fr" || persist {
		t.Errorf("Resolve = (%q, %v), want (fr, false)", code, persist)
	}
}

func TestResolveUsesAcceptLanguage(t *testing.T) {
	s := NewSet([]string{"fr", "ru"})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.5")
	code, _ := s.Resolve(r)
	if code != "fr" {
		t.Errorf("Resolve = %q, want fr", code)
	}
}

func TestResolveDefaultsToEnglish(t *testing.T) {
	s := NewSet(nil)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	code, persist := s.Resolve(r)
	if code != "en" || persist {
		t.Errorf("Resolve = (%q, %v), want (en, false)", code, persist)
	}
}

func TestResolveIgnoresUnsupportedQueryParam(t *testing.T) {
	s := NewSet([]string{"fr"})
	r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
	code, persist := s.Resolve(r)
	if code != "en" || persist {
		t.Errorf("Resolve = (%q, %v), want (en, false)", code, persist)
	}
}

func TestSetCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, "fr")
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].Value != "fr" {
		t.Errorf("cookie = %s=%s, want %s=fr", cookies[0].Name, cookies[0].Value, CookieName)
	}
}
