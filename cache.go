package beeola

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts with TTL. Posts for all
// languages are loaded in one pass and filtered in memory, so a page render
// never costs more than one query burst per TTL window.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost // all languages, date descending
	tags    map[string][]string
	fetched time.Time
	ttl     time.Duration
	store   *Store
	langs   []string
}

// NewPostCache creates a PostCache backed by the given Store for the given
// language codes (default language first).
func NewPostCache(s *Store, langs []string, ttl time.Duration) *PostCache {
	return &PostCache{store: s, langs: langs, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	var all []BlogPost
	tags := make(map[string][]string, len(c.langs))
	for _, lang := range c.langs {
		posts, err := c.store.ListPosts(lang, "")
		if err != nil {
			return err
		}
		all = append(all, posts...)
		langTags, err := c.store.ListTags(lang)
		if err != nil {
			return err
		}
		tags[lang] = langTags
	}
	c.posts = all
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, map[string][]string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// ListPosts returns published posts in lang, optionally filtered by tag,
// date descending.
func (c *PostCache) ListPosts(lang, tag string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	normalized := normalizeTag(tag)
	var filtered []BlogPost
	for _, p := range posts {
		if p.Lang != lang {
			continue
		}
		if normalized == "" {
			filtered = append(filtered, p)
			continue
		}
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags from published posts in lang.
func (c *PostCache) ListTags(lang string) ([]string, error) {
	_, tags, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return tags[lang], nil
}

// GetPost returns a single published post by slug and language.
func (c *PostCache) GetPost(slug, lang string) (BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug && p.Lang == lang {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// Adjacent returns the chronological neighbours of a post within its
// language: prev is the next-older post, next the next-newer. Either may be
// nil at the ends of the timeline.
func (c *PostCache) Adjacent(slug, lang string) (prev, next *BlogPost, err error) {
	posts, err := c.ListPosts(lang, "")
	if err != nil {
		return nil, nil, err
	}
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		// posts are date descending: older neighbours sit after i.
		if i+1 < len(posts) {
			p := posts[i+1]
			prev = &p
		}
		if i > 0 {
			n := posts[i-1]
			next = &n
		}
		return prev, next, nil
	}
	return nil, nil, nil
}

// Translations returns the language tags with a published variant of slug,
// default language first.
func (c *PostCache) Translations(slug string) ([]string, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	var langs []string
	for _, lang := range c.langs {
		for _, p := range posts {
			if p.Slug == slug && p.Lang == lang {
				langs = append(langs, lang)
				break
			}
		}
	}
	return langs, nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
