package model

import (
	"reflect"
	"testing"
)

func TestUpdateListIdempotent(t *testing.T) {
	p := DefaultProfile()
	p.Update(FieldLikes, "coffee")
	once := p

	p.Update(FieldLikes, "coffee")
	if !reflect.DeepEqual(once, p) {
		t.Errorf("expected idempotent append, got %v", p.Likes)
	}

	p.Update(FieldLikes, "tea")
	if !reflect.DeepEqual(p.Likes, []string{"coffee", "tea"}) {
		t.Errorf("expected [coffee tea], got %v", p.Likes)
	}
}

func TestUpdateScalarOverwrite(t *testing.T) {
	p := DefaultProfile()
	p.Update(FieldMemo, "first")
	p.Update(FieldMemo, "second")
	if p.Memo != "second" {
		t.Errorf("expected overwrite, got %q", p.Memo)
	}
}

func TestUpdateUnknownKey(t *testing.T) {
	p := DefaultProfile()
	if err := p.Update("nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := p.Remove("nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRemoveAllOccurrences(t *testing.T) {
	p := DefaultProfile()
	// Duplicates can exist via SaveProfile; Remove drops every occurrence.
	p.Likes = []string{"coffee", "tea", "coffee"}
	p.Remove(FieldLikes, "coffee")
	if !reflect.DeepEqual(p.Likes, []string{"tea"}) {
		t.Errorf("expected [tea], got %v", p.Likes)
	}
}

func TestIsEmpty(t *testing.T) {
	p := DefaultProfile()
	if !p.IsEmpty() {
		t.Error("expected default profile to be empty")
	}
	p.Update(FieldRelationships, "동생")
	if p.IsEmpty() {
		t.Error("expected populated profile to be non-empty")
	}
}

func TestNormalize(t *testing.T) {
	var p Profile
	p.Normalize()
	if p.Likes == nil || p.Dislikes == nil || p.Values == nil || p.Relationships == nil {
		t.Error("expected Normalize to fill nil list fields")
	}
}
