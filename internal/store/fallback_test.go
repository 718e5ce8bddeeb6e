package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/allang/companion-memory/internal/model"
)

func TestFallbackStoreDegradedEpisodes(t *testing.T) {
	ctx := context.Background()
	f := NewFallbackStore()

	if f.Persistent() {
		t.Error("expected fallback store to report non-persistent")
	}

	if _, err := f.AppendEpisode(ctx, "lost", "", 0); err != nil {
		t.Fatalf("append should not error: %v", err)
	}
	episodes, err := f.RecentEpisodes(ctx, 3)
	if err != nil {
		t.Fatalf("recent should not error: %v", err)
	}
	if len(episodes) != 0 {
		t.Errorf("expected always-empty episode log, got %d", len(episodes))
	}

	if n, err := f.PruneEpisodes(ctx, 7); err != nil || n != 0 {
		t.Errorf("expected no-op prune, got n=%d err=%v", n, err)
	}
	if err := f.ClearEpisodes(ctx); err != nil {
		t.Errorf("clear should not error: %v", err)
	}
}

func TestFallbackStoreProfileView(t *testing.T) {
	ctx := context.Background()
	f := NewFallbackStore()

	if p := f.Profile(ctx); !reflect.DeepEqual(p, model.DefaultProfile()) {
		t.Errorf("expected default profile, got %+v", p)
	}

	// Mutations apply in process but are not durable.
	p, err := f.UpdateProfile(ctx, model.FieldLikes, "coffee")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(p.Likes) != 1 {
		t.Errorf("expected in-process update to apply, got %v", p.Likes)
	}

	if err := f.ResetProfile(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p := f.Profile(ctx); !p.IsEmpty() {
		t.Errorf("expected defaults after reset, got %+v", p)
	}
}
