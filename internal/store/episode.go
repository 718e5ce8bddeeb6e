package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

// AppendEpisode creates and persists a new episode stamped with the current
// UTC day and instant. Episodes are never mutated after this point.
func (s *SQLiteStore) AppendEpisode(ctx context.Context, summary, emotion string, priority int) (model.Episode, error) {
	now := time.Now().UTC()

	if emotion == "" {
		emotion = model.DefaultEmotion
	}

	ep := model.Episode{
		ID:        s.newID(),
		Date:      retention.FormatDay(now),
		Summary:   summary,
		Emotion:   emotion,
		Priority:  model.ClampPriority(priority),
		CreatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO episodes (id, date, summary, emotion, priority, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ep.ID, ep.Date, ep.Summary, ep.Emotion, ep.Priority,
		ep.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Episode{}, fmt.Errorf("insert episode: %w", err)
	}

	return ep, nil
}

// RecentEpisodes returns episodes dated within windowDays of now, ordered by
// creation time descending (ID breaks ties), capped at
// retention.RecentEpisodeCap. This is a read-side filter independent of
// retention pruning.
func (s *SQLiteStore) RecentEpisodes(ctx context.Context, windowDays int) ([]model.Episode, error) {
	if windowDays <= 0 {
		windowDays = retention.DefaultRecencyDays
	}
	now := time.Now()

	all, err := s.allEpisodes(ctx)
	if err != nil {
		return nil, err
	}

	var results []model.Episode
	for _, ep := range all {
		if retention.Fresh(now, ep.Date, windowDays) {
			results = append(results, ep)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})

	if len(results) > retention.RecentEpisodeCap {
		results = results[:retention.RecentEpisodeCap]
	}
	return results, nil
}

// PruneEpisodes deletes every episode whose date is older than maxAgeDays
// before now. The "now" snapshot is taken once up front, so episodes appended
// concurrently (always stamped today) never satisfy the deletion predicate.
// Idempotent: pruning an empty candidate set is a no-op.
func (s *SQLiteStore) PruneEpisodes(ctx context.Context, maxAgeDays int) (int, error) {
	if maxAgeDays <= 0 {
		maxAgeDays = retention.DefaultRetentionDays
	}
	now := time.Now()

	all, err := s.allEpisodes(ctx)
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, ep := range all {
		if !retention.Fresh(now, ep.Date, maxAgeDays) {
			stale = append(stale, ep.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("delete episode %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// ClearEpisodes deletes all episodes unconditionally.
func (s *SQLiteStore) ClearEpisodes(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM episodes`)
	if err != nil {
		return fmt.Errorf("clear episodes: %w", err)
	}
	return nil
}

// allEpisodes iterates the full collection, oldest first by date.
func (s *SQLiteStore) allEpisodes(ctx context.Context) ([]model.Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, summary, emotion, priority, created_at
		 FROM episodes ORDER BY date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []model.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEpisode(row scanner) (model.Episode, error) {
	var ep model.Episode
	var createdAt string

	err := row.Scan(&ep.ID, &ep.Date, &ep.Summary, &ep.Emotion, &ep.Priority, &createdAt)
	if err != nil {
		return ep, err
	}

	ep.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return ep, nil
}
