package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertEpisodeAt writes an episode with an arbitrary date, bypassing
// AppendEpisode's today-stamping, for retention tests.
func insertEpisodeAt(t *testing.T, s *SQLiteStore, date, summary string, createdAt time.Time) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO episodes (id, date, summary, emotion, priority, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.newID(), date, summary, model.DefaultEmotion, model.DefaultPriority,
		createdAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("insert episode: %v", err)
	}
}

func day(t *testing.T, offset int) string {
	t.Helper()
	return retention.FormatDay(time.Now().AddDate(0, 0, offset))
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestOpenPrunesStaleEpisodes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	insertEpisodeAt(t, s, day(t, -30), "ancient", time.Now().AddDate(0, 0, -30))
	insertEpisodeAt(t, s, day(t, 0), "today", time.Now())
	s.Close()

	s2, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	all, err := s2.allEpisodes(ctx)
	if err != nil {
		t.Fatalf("all episodes: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 episode after init-time prune, got %d", len(all))
	}
	if all[0].Summary != "today" {
		t.Errorf("expected 'today' to survive, got %q", all[0].Summary)
	}
}

func TestPersistent(t *testing.T) {
	s := newTestStore(t)
	if !s.Persistent() {
		t.Error("expected SQLite store to report persistent")
	}
}
