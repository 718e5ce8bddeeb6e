// Package store provides the memory storage interfaces and SQLite implementation.
package store

import (
	"context"

	"github.com/allang/companion-memory/internal/model"
)

// ProfileStore is the long-term tier: a durable, singleton, field-structured
// fact base about the user.
type ProfileStore interface {
	// Profile returns the current profile merged over defaults. It never
	// fails; storage errors yield the default profile.
	Profile(ctx context.Context) model.Profile

	// SaveProfile overwrites the full profile.
	SaveProfile(ctx context.Context, p model.Profile) error

	// UpdateProfile applies a single-field mutation (idempotent append for
	// list fields, overwrite for scalars) and returns the resulting profile.
	UpdateProfile(ctx context.Context, key, value string) (model.Profile, error)

	// RemoveFromProfile removes a value from a list field, or resets a scalar
	// field to its default. Returns the resulting profile.
	RemoveFromProfile(ctx context.Context, key, value string) (model.Profile, error)

	// ResetProfile restores every field to its default.
	ResetProfile(ctx context.Context) error
}

// EpisodeStore is the mid-term tier: an append-only log of dated summaries
// under a rolling retention window.
type EpisodeStore interface {
	// AppendEpisode creates and persists an episode stamped with the current
	// UTC day and instant. Empty emotion and zero priority take defaults.
	AppendEpisode(ctx context.Context, summary, emotion string, priority int) (model.Episode, error)

	// RecentEpisodes returns episodes dated within windowDays of now, newest
	// first, capped at retention.RecentEpisodeCap.
	RecentEpisodes(ctx context.Context, windowDays int) ([]model.Episode, error)

	// PruneEpisodes deletes episodes dated more than maxAgeDays before now.
	// Idempotent. Returns the number of episodes deleted.
	PruneEpisodes(ctx context.Context, maxAgeDays int) (int, error)

	// ClearEpisodes deletes all episodes unconditionally.
	ClearEpisodes(ctx context.Context) error

	// Persistent reports whether episodes actually survive. A store degraded
	// by an unavailable backing medium returns false, and the router skips
	// mid-term writes silently.
	Persistent() bool
}

// Store is the full memory storage surface owned by the subsystem.
type Store interface {
	ProfileStore
	EpisodeStore

	// Close releases the underlying storage handle.
	Close() error
}
