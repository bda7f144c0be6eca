package filter

import (
	"sort"

	"stacks/internal/models"
)

// TagCount pairs a normalized tag key with its display label and the
// number of distinct notes carrying it.
type TagCount struct {
	Key   string
	Label string
	Count int
}

// TopTags counts distinct notes per normalized tag over the full
// non-private note set, independent of the active criteria. A tag
// repeated within one note counts once. Sorted by count descending,
// label ascending, capped at TopTagLimit.
func (e *Engine) TopTags(notes []models.Note) []TagCount {
	counts := make(map[string]int)
	labels := make(map[string]string)

	for _, n := range notes {
		if n.Category == models.CategoryPrivate {
			continue
		}
		for _, key := range n.TagKeys() {
			counts[key]++
			if _, ok := labels[key]; !ok {
				labels[key] = displayLabel(n.Tags, key)
			}
		}
	}

	out := make([]TagCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, TagCount{Key: key, Label: labels[key], Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})

	if len(out) > e.topTagLimit {
		out = out[:e.topTagLimit]
	}
	return out
}

// displayLabel returns the original casing of the first tag matching
// the normalized key.
func displayLabel(tags []string, key string) string {
	for _, tag := range tags {
		if models.NormalizeTag(tag) == key {
			return tag
		}
	}
	return key
}

// SmartCounts holds the badge numbers for the smart filters, computed
// over the full non-private note set.
type SmartCounts struct {
	Favorites int
	Recent    int
}

// CountSmart tallies the favorites and recent sets.
func (e *Engine) CountSmart(notes []models.Note) SmartCounts {
	var counts SmartCounts
	recent := recentSet(notes, e.recentLimit)
	counts.Recent = len(recent)

	for _, n := range notes {
		if n.Category == models.CategoryPrivate {
			continue
		}
		if n.Favorite {
			counts.Favorites++
		}
	}
	return counts
}
