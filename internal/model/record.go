package model

import "strings"

// Category is the closed set of extraction targets a classifier may declare.
type Category string

const (
	// CategoryLongTerm routes into the profile tier.
	CategoryLongTerm Category = "long-term"
	// CategoryMidTerm routes into the episode tier.
	CategoryMidTerm Category = "mid-term"
	// CategorySkip marks a record the classifier deemed not worth storing.
	CategorySkip Category = "skip"
	// CategoryUnknown is anything else; the router discards it.
	CategoryUnknown Category = ""
)

// ParseCategory maps a raw classifier string onto the closed category set.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long-term":
		return CategoryLongTerm
	case "mid-term":
		return CategoryMidTerm
	case "skip":
		return CategorySkip
	default:
		return CategoryUnknown
	}
}

// Record is a validated extraction record: one classifier-proposed fact with
// its declared target tier. For long-term records Key names a profile field;
// for mid-term records Key carries the emotion tag (possibly empty).
type Record struct {
	Category Category `json:"category"`
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Priority int      `json:"priority"`
}
