package views

import (
	"testing"
)

func TestLanguageLinksFromDefaultLanguage(t *testing.T) {
	links := LanguageLinks("my-post", "en", []string{"en", "fr", "ru"})
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3", len(links))
	}

	tests := []struct {
		code   string
		href   string
		active bool
	}{
		{"en", "/blog/my-post/", true},
		{"fr", "/blog/frmy-post/", false},
		{"ru", "/blog/rumy-post/", false},
	}
	for i, tt := range tests {
		if links[i].Code != tt.code || links[i].Href != tt.href || links[i].Active != tt.active {
			t.Errorf("links[%d] = %+v, want {%s %s active=%v}", i, links[i], tt.code, tt.href, tt.active)
		}
	}
}

func TestLanguageLinksFromTranslatedVariant(t *testing.T) {
	links := LanguageLinks("my-post", "fr", []string{"en", "fr"})

	if links[0].Href != "/blog/my-post/" {
		t.Errorf("en href = %q, want /blog/my-post/", links[0].Href)
	}
	if links[1].Href != "/blog/frmy-post/" {
		t.Errorf("fr href = %q, want /blog/frmy-post/", links[1].Href)
	}
	if !links[1].Active || links[0].Active {
		t.Errorf("active flags wrong: %+v", links)
	}
}

func TestLanguageLabel(t *testing.T) {
	if got := LanguageLabel("fr"); got != "Français" {
		t.Errorf("LanguageLabel(fr) = %q", got)
	}
	if got := LanguageLabel("xx"); got != "xx" {
		t.Errorf("unknown code should pass through, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-10", "March 10, 2024"},
		{"2024-01-02", "January 2, 2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
