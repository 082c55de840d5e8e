package beeola

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Privacy-preserving view counts. No raw IP or user agent is ever stored:
// each view row carries only a salted daily hash, so uniques dedupe within a
// day and the rows stop being linkable across days.

func (s *Store) ensureStatsSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS post_views (
    slug TEXT NOT NULL,
    lang TEXT NOT NULL,
    day TEXT NOT NULL,
    visitor TEXT NOT NULL,
    PRIMARY KEY (slug, lang, day, visitor)
);
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// InitStatsSalt loads or generates the persistent salt used for visitor
// hashing. Must be called once at startup before any views are recorded.
func (s *Store) InitStatsSalt() error {
	salt, err := s.getSetting("view_salt")
	if err != nil {
		return fmt.Errorf("read view salt: %w", err)
	}
	if salt != "" {
		return nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("generate view salt: %w", err)
	}
	if err := s.setSetting("view_salt", hex.EncodeToString(b)); err != nil {
		return fmt.Errorf("store view salt: %w", err)
	}
	return nil
}

// visitorHash fingerprints a visitor for one day only.
func (s *Store) visitorHash(day, ip, userAgent string) (string, error) {
	salt, err := s.getSetting("view_salt")
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(salt + "|" + day + "|" + ip + "|" + userAgent))
	return hex.EncodeToString(sum[:16]), nil
}

// RecordView stores one view of a post variant. Repeat views by the same
// visitor on the same day are collapsed into one row.
func (s *Store) RecordView(slug, lang, ip, userAgent string) error {
	day := time.Now().UTC().Format("2006-01-02")
	visitor, err := s.visitorHash(day, ip, userAgent)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR IGNORE INTO post_views (slug, lang, day, visitor) VALUES (?, ?, ?, ?)`,
		slug, lang, day, visitor)
	return err
}

// ViewCount returns the unique-view total for one post variant.
func (s *Store) ViewCount(slug, lang string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM post_views WHERE slug = ? AND lang = ?`, slug, lang).Scan(&n)
	return n, err
}

// ViewCounts returns unique-view totals keyed by "slug/lang".
func (s *Store) ViewCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT slug, lang, COUNT(*) FROM post_views GROUP BY slug, lang`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slug, lang string
		var n int
		if err := rows.Scan(&slug, &lang, &n); err != nil {
			return nil, err
		}
		counts[slug+"/"+lang] = n
	}
	return counts, rows.Err()
}

// PruneViews deletes view rows older than the retention window.
func (s *Store) PruneViews(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format("2006-01-02")
	_, err := s.db.Exec(`DELETE FROM post_views WHERE day < ?`, cutoff)
	return err
}

// StartStatsCleanup prunes old view rows on a fixed interval until the
// returned stop function is called.
func (s *Store) StartStatsCleanup(retentionDays int, every time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = s.PruneViews(retentionDays)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

// handleRecordView is the beacon endpoint posted by the post page.
func (a *App) handleRecordView(c echo.Context) error {
	slug, lang := a.splitLangSlug(c.FormValue("slug"))
	if slug == "" {
		return c.NoContent(http.StatusNoContent)
	}
	// Only count views of posts that exist.
	if _, err := a.Cache.GetPost(slug, lang); err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	ua := c.Request().Header.Get("User-Agent")
	if err := a.Store.RecordView(slug, lang, c.RealIP(), ua); err != nil {
		c.Logger().Errorf("record view: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}
