// Package memory wires the two storage tiers and the classifier into the
// companion's memory subsystem: route extraction records into the stores,
// and render stored memories into a context block for prompt injection.
package memory

import (
	"context"
	"sync"

	"github.com/allang/companion-memory/internal/classify"
	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/store"
)

// Manager owns one user's memory subsystem. All external writes to the
// stores pass through its router.
type Manager struct {
	store      store.Store
	classifier *classify.Classifier

	// turnMu enforces at most one in-flight classification; overlapping
	// calls for the same turn are skipped rather than queued.
	turnMu sync.Mutex
}

// NewManager builds a manager over an already-open store.
func NewManager(st store.Store, cls *classify.Classifier) *Manager {
	if cls == nil {
		cls = classify.New(classify.Config{})
	}
	return &Manager{store: st, classifier: cls}
}

// Open opens the SQLite-backed subsystem at dbPath. If the database cannot
// be opened the subsystem degrades to a non-persistent store instead of
// failing: every operation stays callable, mid-term writes are skipped, and
// the worst outcome is a fact that silently fails to be remembered.
func Open(dbPath string, cls *classify.Classifier) *Manager {
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logging.Warnf("memory: storage unavailable, running without persistence: %v", err)
		return NewManager(store.NewFallbackStore(), cls)
	}
	return NewManager(st, cls)
}

// Persistent reports whether the underlying store survives restarts.
func (m *Manager) Persistent() bool {
	return m.store.Persistent()
}

// Store exposes the underlying store for direct reads and maintenance.
func (m *Manager) Store() store.Store {
	return m.store
}

// Reset clears both tiers: all episodes are deleted and the profile returns
// to defaults.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.store.ClearEpisodes(ctx); err != nil {
		return err
	}
	return m.store.ResetProfile(ctx)
}

// Close releases the underlying storage handle.
func (m *Manager) Close() error {
	return m.store.Close()
}

// ObserveTurn classifies one conversational turn and routes the resulting
// records into the stores. Classification is advisory: every failure is
// logged and swallowed, and nothing here ever blocks or breaks the chat
// flow. At most one classification runs at a time; a call that arrives while
// another is in flight returns immediately.
func (m *Manager) ObserveTurn(ctx context.Context, userText, assistantText string) {
	if !m.turnMu.TryLock() {
		logging.Debugf("memory: classification in flight, skipping turn")
		return
	}
	defer m.turnMu.Unlock()

	records, err := m.classifier.Classify(ctx, userText, assistantText)
	if err != nil {
		logging.Warnf("memory: classification failed (non-critical): %v", err)
		return
	}
	if len(records) == 0 {
		return
	}

	if err := m.Route(ctx, records); err != nil {
		logging.Warnf("memory: some records failed to store (non-critical): %v", err)
	}
}
