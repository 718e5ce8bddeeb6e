package store

import (
	"context"
	"sync"
	"time"

	"github.com/allang/companion-memory/internal/model"
	"github.com/allang/companion-memory/internal/retention"
)

// FallbackStore is the degraded, non-persistent store used when the SQLite
// database cannot be opened. The profile tier becomes an in-process view that
// starts at defaults and loses mutations on restart; the episode tier is
// always empty and drops appends. Every operation remains callable and none
// returns a storage error, so the subsystem stays fully usable with degraded
// persistence.
type FallbackStore struct {
	mu      sync.Mutex
	profile model.Profile
}

// NewFallbackStore returns a degraded store with a default profile.
func NewFallbackStore() *FallbackStore {
	return &FallbackStore{profile: model.DefaultProfile()}
}

// Profile returns the in-process profile view.
func (f *FallbackStore) Profile(ctx context.Context) model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneProfile(f.profile)
}

// SaveProfile replaces the in-process profile view.
func (f *FallbackStore) SaveProfile(ctx context.Context, p model.Profile) error {
	p.Normalize()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = cloneProfile(p)
	return nil
}

// UpdateProfile mutates the in-process profile view.
func (f *FallbackStore) UpdateProfile(ctx context.Context, key, value string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.profile.Update(key, value); err != nil {
		return cloneProfile(f.profile), err
	}
	return cloneProfile(f.profile), nil
}

// RemoveFromProfile mutates the in-process profile view.
func (f *FallbackStore) RemoveFromProfile(ctx context.Context, key, value string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.profile.Remove(key, value); err != nil {
		return cloneProfile(f.profile), err
	}
	return cloneProfile(f.profile), nil
}

// ResetProfile restores the in-process profile view to defaults.
func (f *FallbackStore) ResetProfile(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = model.DefaultProfile()
	return nil
}

// AppendEpisode returns the episode that would have been stored. Nothing is
// retained; Persistent lets callers see that and skip mid-term writes.
func (f *FallbackStore) AppendEpisode(ctx context.Context, summary, emotion string, priority int) (model.Episode, error) {
	now := time.Now().UTC()
	if emotion == "" {
		emotion = model.DefaultEmotion
	}
	return model.Episode{
		Date:      retention.FormatDay(now),
		Summary:   summary,
		Emotion:   emotion,
		Priority:  model.ClampPriority(priority),
		CreatedAt: now,
	}, nil
}

// RecentEpisodes always returns an empty result.
func (f *FallbackStore) RecentEpisodes(ctx context.Context, windowDays int) ([]model.Episode, error) {
	return nil, nil
}

// PruneEpisodes is a no-op on an always-empty store.
func (f *FallbackStore) PruneEpisodes(ctx context.Context, maxAgeDays int) (int, error) {
	return 0, nil
}

// ClearEpisodes is a no-op on an always-empty store.
func (f *FallbackStore) ClearEpisodes(ctx context.Context) error {
	return nil
}

// Persistent reports false: episodes written here do not survive.
func (f *FallbackStore) Persistent() bool {
	return false
}

// Close is a no-op; there is no underlying handle.
func (f *FallbackStore) Close() error {
	return nil
}

func cloneProfile(p model.Profile) model.Profile {
	out := p
	out.Likes = append([]string{}, p.Likes...)
	out.Dislikes = append([]string{}, p.Dislikes...)
	out.Values = append([]string{}, p.Values...)
	out.Relationships = append([]string{}, p.Relationships...)
	return out
}
