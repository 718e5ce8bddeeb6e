package store

import (
	"context"
	"time"

	"github.com/allang/companion-memory/internal/model"
)

// Snapshot is a full export of both memory tiers, suitable for backup and
// transfer between databases.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Profile    model.Profile   `json:"profile"`
	Episodes   []model.Episode `json:"episodes"`
}

// ExportAll returns the profile and every stored episode, oldest first.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Snapshot, error) {
	episodes, err := s.allEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		ExportedAt: time.Now().UTC(),
		Profile:    s.Profile(ctx),
		Episodes:   episodes,
	}, nil
}

// Import restores a snapshot: the profile is overwritten, episodes are
// re-inserted preserving their original date, emotion, priority, and
// creation instant. Episodes without an ID get a fresh one. Returns the
// number of episodes imported.
func (s *SQLiteStore) Import(ctx context.Context, snap *Snapshot) (int, error) {
	if err := s.SaveProfile(ctx, snap.Profile); err != nil {
		return 0, err
	}

	imported := 0
	for _, ep := range snap.Episodes {
		id := ep.ID
		if id == "" {
			id = s.newID()
		}
		createdAt := ep.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO episodes (id, date, summary, emotion, priority, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, ep.Date, ep.Summary, ep.Emotion,
			model.ClampPriority(ep.Priority), createdAt.Format(time.RFC3339Nano))
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
