// Package folders builds the derived folder indices: id lookup,
// per-category ordering, the legacy name lookup, and note resolution.
// Indices are rebuilt from the flat folder collection on every relevant
// change rather than patched incrementally, so renames and deletes can
// never leave stale entries behind.
package folders

import (
	"sort"
	"strings"

	"stacks/internal/models"
)

// Index is an immutable snapshot of the folder collection.
type Index struct {
	byID       map[string]models.Folder
	byCategory map[models.Category][]models.Folder
	// legacy maps "category::normalized name" to a folder id for notes
	// stored before folders had ids.
	legacy map[string]string
}

// NewIndex builds a fresh index from the full folder collection.
func NewIndex(all []models.Folder) *Index {
	idx := &Index{
		byID:       make(map[string]models.Folder, len(all)),
		byCategory: make(map[models.Category][]models.Folder),
		legacy:     make(map[string]string, len(all)),
	}

	for _, f := range all {
		idx.byID[f.ID] = f
		idx.byCategory[f.Category] = append(idx.byCategory[f.Category], f)
		idx.legacy[legacyKey(f.Category, f.Name)] = f.ID
	}

	for c := range idx.byCategory {
		siblings := idx.byCategory[c]
		sort.SliceStable(siblings, func(i, j int) bool {
			if siblings[i].Order != siblings[j].Order {
				return siblings[i].Order < siblings[j].Order
			}
			return siblings[i].Name < siblings[j].Name
		})
	}

	return idx
}

func legacyKey(c models.Category, name string) string {
	return string(c) + "::" + normalizeName(name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Folder looks up a folder by id.
func (idx *Index) Folder(id string) (models.Folder, bool) {
	f, ok := idx.byID[id]
	return f, ok
}

// ForCategory returns the category's folders sorted by order ascending,
// ties broken by name.
func (idx *Index) ForCategory(c models.Category) []models.Folder {
	return idx.byCategory[c]
}

// Len returns the number of indexed folders.
func (idx *Index) Len() int {
	return len(idx.byID)
}

// Resolve returns the note's effective folder id, or "" when the note
// lives at its category root. An explicit reference wins over the
// legacy path, but a reference that is dangling or that points at a
// folder in a different category resolves to root: the note's own
// category field is authoritative for where the note lives.
func (idx *Index) Resolve(n models.Note) string {
	if n.FolderID != "" {
		f, ok := idx.byID[n.FolderID]
		if !ok || f.Category != n.Category {
			return ""
		}
		return f.ID
	}

	if n.FolderPath != "" {
		if id, ok := idx.legacy[legacyKey(n.Category, n.FolderPath)]; ok {
			return id
		}
	}

	return ""
}

// ResolveFolder is Resolve plus the folder record itself.
func (idx *Index) ResolveFolder(n models.Note) (models.Folder, bool) {
	id := idx.Resolve(n)
	if id == "" {
		return models.Folder{}, false
	}
	f, ok := idx.byID[id]
	return f, ok
}

// Counts holds the per-folder and per-category note tallies the sidebar
// renders. Recomputed in full from the live collections.
type Counts struct {
	ByFolder map[string]int
	Root     map[models.Category]int
	Category map[models.Category]int
}

// CountNotes tallies resolved folder membership for the note
// collection. A note with no resolved folder counts toward its
// category root.
func (idx *Index) CountNotes(notes []models.Note) Counts {
	counts := Counts{
		ByFolder: make(map[string]int, len(idx.byID)),
		Root:     make(map[models.Category]int),
		Category: make(map[models.Category]int),
	}

	for _, n := range notes {
		counts.Category[n.Category]++
		if id := idx.Resolve(n); id != "" {
			counts.ByFolder[id]++
		} else {
			counts.Root[n.Category]++
		}
	}

	return counts
}
