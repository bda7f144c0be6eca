// Package models holds the flat entity types shared by the stores,
// indices, and filter engine. Entities carry no back-references; all
// relationships are recomputed by the index packages.
package models

import (
	"strings"
	"time"
)

// Category is one of the three top-level groupings for personal notes.
// Private notes are excluded from every aggregate view unless the
// private category is selected explicitly.
type Category string

const (
	CategoryPrivate Category = "private"
	CategoryDaily   Category = "daily"
	CategoryIdeas   Category = "ideas"
)

// Categories lists the valid note categories in display order.
var Categories = []Category{CategoryDaily, CategoryIdeas, CategoryPrivate}

func (c Category) Valid() bool {
	switch c {
	case CategoryPrivate, CategoryDaily, CategoryIdeas:
		return true
	}
	return false
}

// Label returns the user-facing name for the category.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(c.String()[:1]) + c.String()[1:]
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps loose user input onto a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Highlight is a captured passage attached to a note. Capture itself
// (PDF/OCR) happens outside this client; highlights arrive through the
// store fully formed.
type Highlight struct {
	ID        string
	Text      string
	Source    string
	CreatedAt time.Time
}

// Note is a personal note. FolderID is the explicit folder reference;
// FolderPath is the legacy free-text location kept for notes written
// before folders had ids. Resolution of the two lives in the folders
// package.
type Note struct {
	ID         string
	Title      string
	Body       string
	Category   Category
	FolderID   string
	FolderPath string
	Tags       []string
	Favorite   bool
	CreatedAt  time.Time
	Highlights []Highlight
}

// NormalizeTag produces the deduplication key for a tag. Display code
// keeps the original casing; filtering and counting use the key.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// TagKeys returns the note's normalized tag set, deduplicated, in first
// occurrence order.
func (n Note) TagKeys() []string {
	if len(n.Tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(n.Tags))
	keys := make([]string, 0, len(n.Tags))
	for _, tag := range n.Tags {
		key := NormalizeTag(tag)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// HasTag reports whether the normalized tag set contains the given key.
func (n Note) HasTag(key string) bool {
	for _, k := range n.TagKeys() {
		if k == key {
			return true
		}
	}
	return false
}
