// Package store persists the note, folder, and catalog collections in
// a single yaml library file and exposes the mutation surface the core
// consumes. Persistence details stay behind the interfaces; the filter
// and move layers only ever see the collections.
package store

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"stacks/internal/models"
)

type document struct {
	Notes   []noteDoc   `yaml:"notes"`
	Folders []folderDoc `yaml:"folders"`
	Items   []itemDoc   `yaml:"items,omitempty"`
}

type noteDoc struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title"`
	Body       string         `yaml:"body,omitempty"`
	Category   string         `yaml:"category"`
	FolderID   string         `yaml:"folder_id,omitempty"`
	FolderPath string         `yaml:"folder,omitempty"`
	Tags       []string       `yaml:"tags,omitempty"`
	Favorite   bool           `yaml:"favorite,omitempty"`
	CreatedAt  time.Time      `yaml:"created_at,omitempty"`
	Created    string         `yaml:"created,omitempty"`
	Highlights []highlightDoc `yaml:"highlights,omitempty"`
}

type highlightDoc struct {
	ID        string    `yaml:"id"`
	Text      string    `yaml:"text"`
	Source    string    `yaml:"source,omitempty"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
}

type folderDoc struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
	Order    int    `yaml:"order"`
}

type itemDoc struct {
	ID         string    `yaml:"id"`
	Kind       string    `yaml:"kind"`
	Title      string    `yaml:"title"`
	Author     string    `yaml:"author,omitempty"`
	Identifier string    `yaml:"identifier,omitempty"`
	Publisher  string    `yaml:"publisher,omitempty"`
	Status     string    `yaml:"status,omitempty"`
	Tags       []string  `yaml:"tags,omitempty"`
	CreatedAt  time.Time `yaml:"created_at,omitempty"`
}

func (d noteDoc) toModel() models.Note {
	created := d.CreatedAt
	if created.IsZero() && strings.TrimSpace(d.Created) != "" {
		// Libraries exported before timestamps were normalized carry a
		// loose created string instead.
		if parsed, err := dateparse.ParseAny(d.Created); err == nil {
			created = parsed
		}
	}

	highlights := make([]models.Highlight, 0, len(d.Highlights))
	for _, h := range d.Highlights {
		highlights = append(highlights, models.Highlight{
			ID:        h.ID,
			Text:      h.Text,
			Source:    h.Source,
			CreatedAt: h.CreatedAt,
		})
	}
	if len(highlights) == 0 {
		highlights = nil
	}

	return models.Note{
		ID:         d.ID,
		Title:      d.Title,
		Body:       d.Body,
		Category:   models.Category(d.Category),
		FolderID:   d.FolderID,
		FolderPath: d.FolderPath,
		Tags:       d.Tags,
		Favorite:   d.Favorite,
		CreatedAt:  created,
		Highlights: highlights,
	}
}

func noteToDoc(n models.Note) noteDoc {
	highlights := make([]highlightDoc, 0, len(n.Highlights))
	for _, h := range n.Highlights {
		highlights = append(highlights, highlightDoc{
			ID:        h.ID,
			Text:      h.Text,
			Source:    h.Source,
			CreatedAt: h.CreatedAt,
		})
	}
	if len(highlights) == 0 {
		highlights = nil
	}

	return noteDoc{
		ID:         n.ID,
		Title:      n.Title,
		Body:       n.Body,
		Category:   string(n.Category),
		FolderID:   n.FolderID,
		FolderPath: n.FolderPath,
		Tags:       n.Tags,
		Favorite:   n.Favorite,
		CreatedAt:  n.CreatedAt,
		Highlights: highlights,
	}
}

func (d folderDoc) toModel() models.Folder {
	return models.Folder{
		ID:       d.ID,
		Category: models.Category(d.Category),
		Name:     d.Name,
		Order:    d.Order,
	}
}

func folderToDoc(f models.Folder) folderDoc {
	return folderDoc{ID: f.ID, Category: string(f.Category), Name: f.Name, Order: f.Order}
}

func (d itemDoc) toModel() models.Item {
	return models.Item{
		ID:         d.ID,
		Kind:       models.ItemKind(d.Kind),
		Title:      d.Title,
		Author:     d.Author,
		Identifier: d.Identifier,
		Publisher:  d.Publisher,
		Status:     models.ReadingStatus(d.Status),
		Tags:       d.Tags,
		CreatedAt:  d.CreatedAt,
	}
}

func itemToDoc(i models.Item) itemDoc {
	return itemDoc{
		ID:         i.ID,
		Kind:       string(i.Kind),
		Title:      i.Title,
		Author:     i.Author,
		Identifier: i.Identifier,
		Publisher:  i.Publisher,
		Status:     string(i.Status),
		Tags:       i.Tags,
		CreatedAt:  i.CreatedAt,
	}
}
