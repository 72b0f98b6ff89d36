package gallery

import (
	"slices"

	"portfolio-gallery/pkg/models"
)

// Category is one filter tab. A nil Match selects every entry.
type Category struct {
	Key         string
	Label       string
	Description string
	Match       func(models.Entry) bool
}

// CategorySpec declares a category as data. Within a dimension any listed
// value matches; across dimensions all non-empty ones must match. A spec
// with no criteria matches everything.
type CategorySpec struct {
	Key         string             `json:"key" mapstructure:"key"`
	Label       string             `json:"label" mapstructure:"label"`
	Description string             `json:"description,omitempty" mapstructure:"description"`
	Kinds       []models.MediaKind `json:"kinds,omitempty" mapstructure:"kinds"`
	Categories  []models.Category  `json:"categories,omitempty" mapstructure:"categories"`
	Sections    []models.Section   `json:"sections,omitempty" mapstructure:"sections"`
}

// MatchesAll reports whether s has no criteria
func (s CategorySpec) MatchesAll() bool {
	return len(s.Kinds) == 0 && len(s.Categories) == 0 && len(s.Sections) == 0
}

// Matches reports whether e satisfies every criterion of s
func (s CategorySpec) Matches(e models.Entry) bool {
	if len(s.Kinds) > 0 && !slices.Contains(s.Kinds, e.MediaKind) {
		return false
	}
	if len(s.Categories) > 0 && !slices.Contains(s.Categories, e.Category) {
		return false
	}
	if len(s.Sections) > 0 && !slices.Contains(s.Sections, e.Section) {
		return false
	}
	return true
}

// Compile turns s into a Category
func (s CategorySpec) Compile() Category {
	c := Category{Key: s.Key, Label: s.Label, Description: s.Description}
	if !s.MatchesAll() {
		c.Match = s.Matches
	}
	return c
}

// Compile turns a list of specs into categories, preserving order
func Compile(specs []CategorySpec) []Category {
	out := make([]Category, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Compile())
	}
	return out
}

// find returns the category with key
func find(categories []Category, key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Filter returns the entries of catalog selected by the category with key.
// A category without a predicate, or a key that names no category, selects
// the whole catalog. The input is never modified.
func Filter(catalog []models.Entry, categories []Category, key string) []models.Entry {
	c, ok := find(categories, key)
	if !ok || c.Match == nil {
		return catalog
	}

	var out []models.Entry
	for _, e := range catalog {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
