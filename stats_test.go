package beeola

import "testing"

func TestRecordViewDeduplicatesWithinDay(t *testing.T) {
	s := setupTestStore(t)
	if err := s.InitStatsSalt(); err != nil {
		t.Fatalf("InitStatsSalt failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.RecordView("my-post", "en", "203.0.113.5", "test-agent"); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}
	if err := s.RecordView("my-post", "en", "203.0.113.6", "test-agent"); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	n, err := s.ViewCount("my-post", "en")
	if err != nil {
		t.Fatalf("ViewCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ViewCount = %d, want 2 unique visitors", n)
	}
}

func TestViewCountsArePerVariant(t *testing.T) {
	s := setupTestStore(t)
	if err := s.InitStatsSalt(); err != nil {
		t.Fatalf("InitStatsSalt failed: %v", err)
	}

	if err := s.RecordView("my-post", "en", "203.0.113.5", "a"); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}
	if err := s.RecordView("my-post", "fr", "203.0.113.5", "a"); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	counts, err := s.ViewCounts()
	if err != nil {
		t.Fatalf("ViewCounts failed: %v", err)
	}
	if counts["my-post/en"] != 1 || counts["my-post/fr"] != 1 {
		t.Errorf("ViewCounts = %v", counts)
	}
}

func TestInitStatsSaltIsStable(t *testing.T) {
	s := setupTestStore(t)
	if err := s.InitStatsSalt(); err != nil {
		t.Fatalf("InitStatsSalt failed: %v", err)
	}
	first, err := s.getSetting("view_salt")
	if err != nil || first == "" {
		t.Fatalf("salt not stored: %q, %v", first, err)
	}
	if err := s.InitStatsSalt(); err != nil {
		t.Fatalf("second InitStatsSalt failed: %v", err)
	}
	second, _ := s.getSetting("view_salt")
	if first != second {
		t.Error("salt should not change across restarts")
	}
}

func TestPruneViews(t *testing.T) {
	s := setupTestStore(t)
	if err := s.InitStatsSalt(); err != nil {
		t.Fatalf("InitStatsSalt failed: %v", err)
	}

	// Insert an old row directly; RecordView always stamps today.
	if _, err := s.db.Exec(`INSERT INTO post_views (slug, lang, day, visitor) VALUES ('old', 'en', '2000-01-01', 'x')`); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordView("fresh", "en", "203.0.113.5", "a"); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	if err := s.PruneViews(30); err != nil {
		t.Fatalf("PruneViews failed: %v", err)
	}

	if n, _ := s.ViewCount("old", "en"); n != 0 {
		t.Errorf("old views should be pruned, got %d", n)
	}
	if n, _ := s.ViewCount("fresh", "en"); n != 1 {
		t.Errorf("fresh views should survive, got %d", n)
	}
}
