package beeola

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for blog posts
// and their language variants.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT NOT NULL,
    lang TEXT NOT NULL DEFAULT 'en',
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (slug, lang)
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	return s.ensureStatsSchema()
}

const postColumns = `slug, lang, title, date, tags, summary, content, published`

func scanPost(scan func(dest ...any) error) (BlogPost, error) {
	var slug, lang, title, date, tags, summary, content string
	var published int
	if err := scan(&slug, &lang, &title, &date, &tags, &summary, &content, &published); err != nil {
		return BlogPost{}, err
	}
	return BlogPost{
		Slug:      slug,
		Lang:      lang,
		Title:     title,
		Date:      date,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Content:   content,
		Link:      PostPath(slug, lang),
		Published: published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ListPosts returns published posts in the given language ordered by date
// descending. If tag is non-empty, results are filtered to posts carrying it.
func (s *Store) ListPosts(lang, tag string) ([]BlogPost, error) {
	if tag == "" {
		return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND lang = ? ORDER BY date DESC, slug`, lang)
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND lang = ? AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug`, lang, normalized)
}

// ListAllPosts returns every post in every language, drafts included,
// ordered by date descending.
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug, lang`)
}

// ListTags returns a sorted, deduplicated slice of tags from published posts
// in the given language.
func (s *Store) ListTags(lang string) ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1 AND lang = ?`, lang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug and language.
func (s *Store) GetPost(slug, lang string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND lang = ? AND published = 1`, slug, lang)
	return scanPost(row.Scan)
}

// GetPostAny returns a post regardless of published status (for admin).
func (s *Store) GetPostAny(slug, lang string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND lang = ?`, slug, lang)
	return scanPost(row.Scan)
}

// ListTranslations returns the language tags that have a published variant of
// the given slug, default language first, the rest sorted.
func (s *Store) ListTranslations(slug string) ([]string, error) {
	rows, err := s.db.Query(`SELECT lang FROM posts WHERE slug = ? AND published = 1`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []string
	hasDefault := false
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, err
		}
		if lang == DefaultLanguage {
			hasDefault = true
			continue
		}
		langs = append(langs, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(langs)
	if hasDefault {
		langs = append([]string{DefaultLanguage}, langs...)
	}
	return langs, nil
}

// SavePost upserts a blog post variant. Tags are normalized to lowercase.
func (s *Store) SavePost(p BlogPost) error {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	published := 0
	if p.Published {
		published = 1
	}
	lang := p.Lang
	if lang == "" {
		lang = DefaultLanguage
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (slug, lang, title, date, tags, summary, content, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, lang, p.Title, p.Date, tagString, p.Summary, p.Content, published)
	return err
}

// DeletePost removes one language variant of a post.
func (s *Store) DeletePost(slug, lang string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ? AND lang = ?`, slug, lang)
	return err
}

// SaveImage records uploaded image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
