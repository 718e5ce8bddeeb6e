// Package model defines the core memory data types.
package model

import "fmt"

// Profile field keys accepted by Update and Remove.
const (
	FieldName           = "name"
	FieldBirthday       = "birthday"
	FieldLikes          = "likes"
	FieldDislikes       = "dislikes"
	FieldValues         = "values"
	FieldRelationships  = "relationships"
	FieldOfficeLocation = "office_location"
	FieldHomeLocation   = "home_location"
	FieldMemo           = "memo"
)

// Profile is the durable, singleton fact base about the user (long-term tier).
// List fields are set-like: Update never inserts a duplicate.
type Profile struct {
	Name           string   `json:"name"`
	Birthday       string   `json:"birthday"`
	Likes          []string `json:"likes"`
	Dislikes       []string `json:"dislikes"`
	Values         []string `json:"values"`
	Relationships  []string `json:"relationships"`
	OfficeLocation string   `json:"office_location"`
	HomeLocation   string   `json:"home_location"`
	Memo           string   `json:"memo"`
}

// DefaultProfile returns a profile with every field at its default.
// List fields are non-nil so callers can range and marshal without nil checks.
func DefaultProfile() Profile {
	return Profile{
		Likes:         []string{},
		Dislikes:      []string{},
		Values:        []string{},
		Relationships: []string{},
	}
}

// Normalize fills nil list fields with empty slices. Profiles decoded from
// storage may carry nils for fields the stored record omitted.
func (p *Profile) Normalize() {
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Dislikes == nil {
		p.Dislikes = []string{}
	}
	if p.Values == nil {
		p.Values = []string{}
	}
	if p.Relationships == nil {
		p.Relationships = []string{}
	}
}

// Update applies a single-field mutation. List fields get an idempotent
// append: the value is added only if not already present. Scalar fields are
// overwritten. Unknown keys are rejected.
func (p *Profile) Update(key, value string) error {
	switch key {
	case FieldName:
		p.Name = value
	case FieldBirthday:
		p.Birthday = value
	case FieldLikes:
		p.Likes = appendUnique(p.Likes, value)
	case FieldDislikes:
		p.Dislikes = appendUnique(p.Dislikes, value)
	case FieldValues:
		p.Values = appendUnique(p.Values, value)
	case FieldRelationships:
		p.Relationships = appendUnique(p.Relationships, value)
	case FieldOfficeLocation:
		p.OfficeLocation = value
	case FieldHomeLocation:
		p.HomeLocation = value
	case FieldMemo:
		p.Memo = value
	default:
		return fmt.Errorf("unknown profile field %q", key)
	}
	return nil
}

// Remove undoes a single-field fact. List fields drop every occurrence equal
// to value; scalar fields reset to their default regardless of value.
func (p *Profile) Remove(key, value string) error {
	switch key {
	case FieldName:
		p.Name = ""
	case FieldBirthday:
		p.Birthday = ""
	case FieldLikes:
		p.Likes = removeAll(p.Likes, value)
	case FieldDislikes:
		p.Dislikes = removeAll(p.Dislikes, value)
	case FieldValues:
		p.Values = removeAll(p.Values, value)
	case FieldRelationships:
		p.Relationships = removeAll(p.Relationships, value)
	case FieldOfficeLocation:
		p.OfficeLocation = ""
	case FieldHomeLocation:
		p.HomeLocation = ""
	case FieldMemo:
		p.Memo = ""
	default:
		return fmt.Errorf("unknown profile field %q", key)
	}
	return nil
}

// IsEmpty reports whether every field is at its default.
func (p *Profile) IsEmpty() bool {
	return p.Name == "" && p.Birthday == "" &&
		len(p.Likes) == 0 && len(p.Dislikes) == 0 &&
		len(p.Values) == 0 && len(p.Relationships) == 0 &&
		p.OfficeLocation == "" && p.HomeLocation == "" && p.Memo == ""
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

func removeAll(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
