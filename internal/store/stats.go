package store

import (
	"context"
	"os"
	"time"

	"github.com/allang/companion-memory/internal/retention"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string `json:"db_path"`
	DBSizeBytes    int64  `json:"db_size_bytes"`
	TotalEpisodes  int    `json:"total_episodes"`
	FreshEpisodes  int    `json:"fresh_episodes"`
	ProfileFields  int    `json:"profile_fields"`
	ProfilePresent bool   `json:"profile_present"`
}

// Stats returns database statistics: episode counts against the retention
// window and how much of the profile is populated.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	episodes, err := s.allEpisodes(ctx)
	if err != nil {
		return st, err
	}
	st.TotalEpisodes = len(episodes)

	now := time.Now()
	for _, ep := range episodes {
		if retention.Fresh(now, ep.Date, retention.DefaultRetentionDays) {
			st.FreshEpisodes++
		}
	}

	p := s.Profile(ctx)
	st.ProfilePresent = !p.IsEmpty()
	for _, populated := range []bool{
		p.Name != "", p.Birthday != "",
		len(p.Likes) > 0, len(p.Dislikes) > 0,
		len(p.Values) > 0, len(p.Relationships) > 0,
		p.OfficeLocation != "", p.HomeLocation != "", p.Memo != "",
	} {
		if populated {
			st.ProfileFields++
		}
	}

	return st, nil
}
