package beeola

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// frontmatter is the YAML header carried by every content file.
type frontmatter struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Spoiler string `yaml:"spoiler"`
	Tags    string `yaml:"tags"`
	Draft   bool   `yaml:"draft"`
}

const frontmatterFence = "---"

// ParseContentFile splits a content file into its YAML frontmatter and body.
// The body is kept verbatim; it is expected to already be rendered HTML.
func ParseContentFile(data []byte) (frontmatter, string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, frontmatterFence+"\n") {
		return frontmatter{}, "", fmt.Errorf("missing frontmatter fence")
	}
	rest := text[len(frontmatterFence)+1:]
	idx := strings.Index(rest, "\n"+frontmatterFence)
	if idx < 0 {
		return frontmatter{}, "", fmt.Errorf("unterminated frontmatter")
	}
	header := rest[:idx]
	body := rest[idx+len(frontmatterFence)+1:]
	body = strings.TrimPrefix(body, "\n")

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Title == "" {
		return frontmatter{}, "", fmt.Errorf("frontmatter missing title")
	}
	return fm, strings.TrimSpace(body), nil
}

// contentFileLang maps a content filename to the language it holds:
// index.html is the default language, index.<lang>.html a translation.
// The second return is false for files that are not content files.
func contentFileLang(name string) (string, bool) {
	if !strings.HasSuffix(name, ".html") {
		return "", false
	}
	base := strings.TrimSuffix(name, ".html")
	if base == "index" {
		return DefaultLanguage, true
	}
	if lang, ok := strings.CutPrefix(base, "index."); ok && lang != "" {
		return lang, true
	}
	return "", false
}

// ImportDir walks a content directory laid out as one subdirectory per post
// (directory name = slug) holding index.html plus index.<lang>.html
// translations, and upserts every variant into the store. It returns the
// number of variants imported.
func ImportDir(store *Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read content dir: %w", err)
	}
	imported := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		slug := entry.Name()
		files, err := os.ReadDir(filepath.Join(dir, slug))
		if err != nil {
			return imported, err
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			lang, ok := contentFileLang(f.Name())
			if !ok {
				continue
			}
			path := filepath.Join(dir, slug, f.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return imported, err
			}
			fm, body, err := ParseContentFile(data)
			if err != nil {
				return imported, fmt.Errorf("%s: %w", path, err)
			}
			post := BlogPost{
				Slug:      slug,
				Lang:      lang,
				Title:     fm.Title,
				Date:      fm.Date,
				Tags:      FilterEmpty(strings.Split(fm.Tags, ",")),
				Summary:   fm.Spoiler,
				Content:   body,
				Published: !fm.Draft,
			}
			if err := store.SavePost(post); err != nil {
				return imported, fmt.Errorf("%s: save: %w", path, err)
			}
			imported++
		}
	}
	return imported, nil
}
