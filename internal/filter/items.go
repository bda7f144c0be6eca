package filter

import (
	"sort"
	"strings"

	"stacks/internal/models"
)

// Items returns the visible catalog set for the criteria, sorted.
// Category, folder, and smart filters are note concerns and do not
// constrain catalog items; status and publisher apply here instead.
func (e *Engine) Items(items []models.Item, st State) []models.Item {
	kind, ok := st.Tab.ItemKind()
	if !ok {
		return nil
	}

	out := make([]models.Item, 0, len(items))
	for _, i := range items {
		if !e.matchItem(i, kind, st) {
			continue
		}
		out = append(out, i)
	}

	e.sortItems(out, st.Sort)
	return out
}

func (e *Engine) matchItem(i models.Item, kind models.ItemKind, st State) bool {
	if i.Kind != kind {
		return false
	}
	if st.Status != "" && i.Status != st.Status {
		return false
	}
	if st.Publisher != "" && !strings.EqualFold(i.Publisher, st.Publisher) {
		return false
	}
	if st.Tag != "" && !(models.Note{Tags: i.Tags}).HasTag(st.Tag) {
		return false
	}
	if st.Query != "" && !itemMatchesQuery(i, st.Query) {
		return false
	}
	return true
}

// itemMatchesQuery tries title, author, the type-specific identifier,
// then tags; first hit wins.
func itemMatchesQuery(i models.Item, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(i.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(i.Author), q) {
		return true
	}
	if strings.Contains(strings.ToLower(i.Identifier), q) {
		return true
	}
	if strings.Contains(strings.ToLower(i.Publisher), q) {
		return true
	}
	for _, tag := range i.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (e *Engine) sortItems(items []models.Item, s Sort) {
	switch s {
	case SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return e.collator.CompareString(items[i].Title, items[j].Title) < 0
		})
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

// Publishers returns the distinct publisher values for a kind, sorted,
// for cycling through the publisher filter.
func (e *Engine) Publishers(items []models.Item, kind models.ItemKind) []string {
	seen := make(map[string]string)
	for _, i := range items {
		if i.Kind != kind || strings.TrimSpace(i.Publisher) == "" {
			continue
		}
		seen[strings.ToLower(i.Publisher)] = i.Publisher
	}

	out := make([]string, 0, len(seen))
	for _, label := range seen {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool {
		return e.collator.CompareString(out[i], out[j]) < 0
	})
	return out
}
