package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/allang/companion-memory/internal/logging"
	"github.com/allang/companion-memory/internal/model"
)

// Route writes each record into the tier its category declares: long-term
// records become profile field updates, mid-term records become episodes,
// everything else is discarded. One record's failure never aborts the rest
// of the batch; failures are accumulated and returned after every record has
// been attempted.
func (m *Manager) Route(ctx context.Context, records []model.Record) error {
	var errs []error

	for _, rec := range records {
		switch rec.Category {
		case model.CategoryLongTerm:
			if _, err := m.store.UpdateProfile(ctx, rec.Key, rec.Value); err != nil {
				logging.Warnf("memory: long-term record %q not stored: %v", rec.Key, err)
				errs = append(errs, fmt.Errorf("long-term %q: %w", rec.Key, err))
			}

		case model.CategoryMidTerm:
			if !m.store.Persistent() {
				logging.Debugf("memory: episode store degraded, dropping mid-term record")
				continue
			}
			// The record's key doubles as the emotion tag; empty falls back
			// to the neutral default inside the store.
			if _, err := m.store.AppendEpisode(ctx, rec.Value, rec.Key, rec.Priority); err != nil {
				logging.Warnf("memory: mid-term record not stored: %v", err)
				errs = append(errs, fmt.Errorf("mid-term: %w", err))
			}

		case model.CategorySkip, model.CategoryUnknown:
			// Discarded.
		}
	}

	return errors.Join(errs...)
}
