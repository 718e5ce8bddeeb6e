package store

import (
	"context"

	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

// SearchEpisodes finds episodes whose summary contains the query substring,
// newest first. Search spans the whole log, not just the recency window.
func (s *SQLiteStore) SearchEpisodes(ctx context.Context, query string, limit int) ([]model.Episode, error) {
	if limit <= 0 {
		limit = retention.RecentEpisodeCap
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, summary, emotion, priority, created_at
		 FROM episodes
		 WHERE summary LIKE ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		"%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, ep)
	}
	return results, rows.Err()
}
