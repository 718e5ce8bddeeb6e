package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/retention"
)

// profileKey is the fixed key the single profile record lives under.
const profileKey = "user_profile"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand

	// mu serializes read-modify-write cycles on the single profile record,
	// so concurrent updates resolve to sequential field-level writes instead
	// of racing on the whole record.
	mu sync.Mutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path and
// prunes stale episodes, mirroring the subsystem's init-time cleanup.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if n, err := s.PruneEpisodes(context.Background(), retention.DefaultRetentionDays); err != nil {
		logging.Warnf("store: init-time prune failed: %v", err)
	} else if n > 0 {
		logging.Debugf("store: pruned %d stale episodes on open", n)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profile (
		key        TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS episodes (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		summary    TEXT NOT NULL,
		emotion    TEXT NOT NULL,
		priority   INTEGER NOT NULL DEFAULT 3,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_episodes_date ON episodes(date);
	CREATE INDEX IF NOT EXISTS idx_episodes_created ON episodes(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Persistent always reports true for a successfully opened SQLite store.
func (s *SQLiteStore) Persistent() bool {
	return true
}
