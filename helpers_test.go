package beeola

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Algebraic Effects!  ", "algebraic-effects"},
		{"Go 1.24 is out", "go-1-24-is-out"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPostPath(t *testing.T) {
	tests := []struct {
		slug string
		lang string
		want string
	}{
		{"my-post", "en", "/blog/my-post/"},
		{"my-post", "", "/blog/my-post/"},
		{"my-post", "fr", "/blog/fr/my-post/"},
	}
	for _, tt := range tests {
		if got := PostPath(tt.slug, tt.lang); got != tt.want {
			t.Errorf("PostPath(%q, %q) = %q, want %q", tt.slug, tt.lang, got, tt.want)
		}
	}
}

func TestLangSlug(t *testing.T) {
	tests := []struct {
		slug string
		lang string
		want string
	}{
		{"my-post", "en", "my-post"},
		{"my-post", "", "my-post"},
		{"my-post", "fr", "fr/my-post"},
	}
	for _, tt := range tests {
		if got := LangSlug(tt.slug, tt.lang); got != tt.want {
			t.Errorf("LangSlug(%q, %q) = %q, want %q", tt.slug, tt.lang, got, tt.want)
		}
	}
}

func TestDiscussURL(t *testing.T) {
	got := DiscussURL("https://beeola.me/blog/my-post/")
	want := "https://mobile.twitter.com/search?q=https%3A%2F%2Fbeeola.me%2Fblog%2Fmy-post%2F"
	if got != want {
		t.Errorf("DiscussURL = %q, want %q", got, want)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://beeola.me", []string{"blog", "my-post"}, "https://beeola.me/blog/my-post/"},
		{"https://beeola.me", nil, "https://beeola.me"},
		{"https://beeola.me", []string{"/blog/fr/my-post/"}, "https://beeola.me/blog/fr/my-post/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestCanonicalURLUsesDefaultLanguageAddress(t *testing.T) {
	got := CanonicalURL("https://beeola.me", "my-post")
	if got != "https://beeola.me/blog/my-post/" {
		t.Errorf("CanonicalURL = %q", got)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{",go,web,", []string{"go", "web"}},
		{"", nil},
		{",,", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		got := ParseTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := BlogPost{Slug: "a", Tags: []string{"go", "web"}}
	posts := []BlogPost{
		{Slug: "a", Tags: []string{"go"}},
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"design"}},
		{Slug: "d", Tags: []string{"Web"}},
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 2 || related[0].Slug != "b" || related[1].Slug != "d" {
		t.Errorf("FilterRelatedPosts = %v, want [b d]", related)
	}
}

func TestBlogPostingJsonLDIncludesLanguage(t *testing.T) {
	cfg := SiteConfig{Name: "beeola.me", URL: "https://beeola.me", Author: "Biola"}
	post := BlogPost{Slug: "my-post", Lang: "fr", Title: "Mon article", Date: "2024-01-01", Summary: "s"}
	got := BlogPostingJsonLD(post, cfg)
	for _, want := range []string{`"inLanguage":"fr"`, `"headline":"Mon article"`, `https://beeola.me/blog/fr/my-post/`} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogPostingJsonLD missing %q in %s", want, got)
		}
	}
}
