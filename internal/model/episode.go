package model

import "time"

// Episode defaults. The neutral emotion tag matches the companion's working
// language.
const (
	DefaultEmotion  = "평온"
	DefaultPriority = 3
	MinPriority     = 1
	MaxPriority     = 5
)

// Episode is a single dated, append-only memory entry (mid-term tier).
// Date carries day granularity and drives retention and recency filtering;
// CreatedAt only orders results and breaks ties.
type Episode struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD, UTC
	Summary   string    `json:"summary"`
	Emotion   string    `json:"emotion"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// ClampPriority forces a priority into the valid 1..5 range, substituting the
// default for zero (unset) values.
func ClampPriority(p int) int {
	if p == 0 {
		return DefaultPriority
	}
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}
