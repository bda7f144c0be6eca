package models

import "time"

// ItemKind distinguishes the catalog content types.
type ItemKind string

const (
	ItemBook    ItemKind = "book"
	ItemArticle ItemKind = "article"
	ItemWebsite ItemKind = "website"
)

// ReadingStatus tracks catalog progress. Empty means untracked.
type ReadingStatus string

const (
	StatusUnread   ReadingStatus = "unread"
	StatusReading  ReadingStatus = "reading"
	StatusFinished ReadingStatus = "finished"
)

// Item is a catalog entry: a book, article, or website. The editing
// forms for these live outside this client; the core only filters and
// lists them. Identifier holds the type-specific id (ISBN for books,
// DOI or URL otherwise).
type Item struct {
	ID         string
	Kind       ItemKind
	Title      string
	Author     string
	Identifier string
	Publisher  string
	Status     ReadingStatus
	Tags       []string
	CreatedAt  time.Time
}

// TagKeys returns the item's normalized tag set in first occurrence
// order, mirroring Note.TagKeys.
func (i Item) TagKeys() []string {
	return Note{Tags: i.Tags}.TagKeys()
}
