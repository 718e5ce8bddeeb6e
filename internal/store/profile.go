package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/model"
)

// Profile returns the stored profile merged over defaults. A missing record
// or any storage error yields the default-filled profile; reads never fail.
// Unknown fields in the stored record are ignored.
func (s *SQLiteStore) Profile(ctx context.Context) model.Profile {
	p := model.DefaultProfile()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profile WHERE key = ?`, profileKey).Scan(&data)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Warnf("store: read profile: %v", err)
		}
		return p
	}

	if err := json.Unmarshal([]byte(data), &p); err != nil {
		logging.Warnf("store: corrupt profile record, using defaults: %v", err)
		return model.DefaultProfile()
	}
	p.Normalize()
	return p
}

// SaveProfile overwrites the full profile record.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p model.Profile) error {
	p.Normalize()
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profile (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		profileKey, string(b), now)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// UpdateProfile applies a single-field mutation and persists the result.
// List fields get an idempotent append; scalar fields are overwritten.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, key, value string) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.Profile(ctx)
	if err := p.Update(key, value); err != nil {
		return p, err
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// RemoveFromProfile removes a value from a list field, or resets a scalar
// field to its default, and persists the result.
func (s *SQLiteStore) RemoveFromProfile(ctx context.Context, key, value string) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.Profile(ctx)
	if err := p.Remove(key, value); err != nil {
		return p, err
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// ResetProfile deletes the stored record; subsequent reads return defaults.
func (s *SQLiteStore) ResetProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE key = ?`, profileKey)
	if err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}
