// Package filter derives the visible, sorted content set from the flat
// collections and the active criteria. Evaluation is a pure function of
// its inputs: nothing here caches between calls, so folder renames and
// deletes can never leave the view stale.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stacks/internal/folders"
	"stacks/internal/markdown"
	"stacks/internal/models"
)

// Tab selects the content type under view.
type Tab int

const (
	TabNotes Tab = iota
	TabBooks
	TabArticles
	TabWebsites
	TabHighlights
)

func (t Tab) String() string {
	switch t {
	case TabNotes:
		return "Notes"
	case TabBooks:
		return "Books"
	case TabArticles:
		return "Articles"
	case TabWebsites:
		return "Websites"
	case TabHighlights:
		return "Highlights"
	}
	return "Unknown"
}

// ItemKind maps a catalog tab onto the item kind it shows.
func (t Tab) ItemKind() (models.ItemKind, bool) {
	switch t {
	case TabBooks:
		return models.ItemBook, true
	case TabArticles:
		return models.ItemArticle, true
	case TabWebsites:
		return models.ItemWebsite, true
	}
	return "", false
}

// Smart is a derived, non-persisted view criterion.
type Smart int

const (
	SmartNone Smart = iota
	SmartFavorites
	SmartRecent
)

// Sort selects the result ordering.
type Sort int

const (
	SortNewest Sort = iota
	SortOldest
	SortTitle
)

// Folder filter sentinels. Any other value is a folder id.
const (
	FolderAll  = "all"
	FolderRoot = "root"
)

// CategoryAll disables the category constraint. With it active, private
// notes stay hidden; selecting CategoryPrivate explicitly is the only
// way to see them.
const CategoryAll = models.Category("")

// RecentLimit is how many of the newest non-private notes the Recent
// smart filter covers.
const RecentLimit = 20

// TopTagLimit caps the Top Tags aggregate.
const TopTagLimit = 10

// State is the full set of active criteria.
type State struct {
	Tab       Tab
	Category  models.Category
	Folder    string
	Smart     Smart
	Tag       string
	Query     string
	Status    models.ReadingStatus
	Publisher string
	Sort      Sort
}

// NewState returns the initial criteria: the notes tab, all folders,
// newest first.
func NewState() State {
	return State{Tab: TabNotes, Category: CategoryAll, Folder: FolderAll, Sort: SortNewest}
}

// Engine evaluates criteria against the collections. It owns the
// collator so title sorts are locale-aware.
type Engine struct {
	collator *collate.Collator

	recentLimit int
	topTagLimit int
}

// NewEngine builds an engine collating titles for the given locale tag.
// An unparseable or empty tag falls back to English.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Engine{
		collator:    collate.New(tag, collate.IgnoreCase),
		recentLimit: RecentLimit,
		topTagLimit: TopTagLimit,
	}
}

// SetLimits overrides the recent-set size and the top-tags cap.
// Non-positive values keep the defaults.
func (e *Engine) SetLimits(recent, topTags int) {
	if recent > 0 {
		e.recentLimit = recent
	}
	if topTags > 0 {
		e.topTagLimit = topTags
	}
}

// Notes returns the visible note set for the criteria, sorted. The
// index supplies folder resolution for the folder constraint and the
// free-text folder-name field.
func (e *Engine) Notes(notes []models.Note, idx *folders.Index, st State) []models.Note {
	recent := recentSet(notes, e.recentLimit)

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if !e.matchNote(n, idx, st, recent) {
			continue
		}
		out = append(out, n)
	}

	e.sortNotes(out, st.Sort)
	return out
}

// matchNote runs the criteria in cost order, rejecting on the first
// failing check.
func (e *Engine) matchNote(n models.Note, idx *folders.Index, st State, recent map[string]struct{}) bool {
	if st.Tab != TabNotes && st.Tab != TabHighlights {
		return false
	}
	if st.Tab == TabHighlights && len(n.Highlights) == 0 {
		return false
	}

	switch st.Category {
	case CategoryAll:
		if n.Category == models.CategoryPrivate {
			return false
		}
	default:
		if n.Category != st.Category {
			return false
		}
	}

	switch st.Folder {
	case FolderAll:
	case FolderRoot:
		if idx.Resolve(n) != "" {
			return false
		}
	default:
		if idx.Resolve(n) != st.Folder {
			return false
		}
	}

	switch st.Smart {
	case SmartFavorites:
		if !n.Favorite {
			return false
		}
	case SmartRecent:
		if _, ok := recent[n.ID]; !ok {
			return false
		}
	}

	if st.Tag != "" && !n.HasTag(st.Tag) {
		return false
	}

	if st.Query != "" && !e.noteMatchesQuery(n, idx, st.Query) {
		return false
	}

	return true
}

// noteMatchesQuery tries the query against each searchable field in
// order; the first hit wins. Pure OR, unranked.
func (e *Engine) noteMatchesQuery(n models.Note, idx *folders.Index, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(markdown.Plain(n.Body)), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Category.Label()), q) {
		return true
	}
	if f, ok := idx.ResolveFolder(n); ok {
		if strings.Contains(strings.ToLower(f.Name), q) {
			return true
		}
	}

	return false
}

func (e *Engine) sortNotes(notes []models.Note, s Sort) {
	switch s {
	case SortTitle:
		sort.SliceStable(notes, func(i, j int) bool {
			return e.collator.CompareString(notes[i].Title, notes[j].Title) < 0
		})
	case SortOldest:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		})
	default:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		})
	}
}

// recentSet returns the ids of the newest non-private notes, capped at
// RecentLimit. Ties on timestamp keep collection order.
func recentSet(notes []models.Note, limit int) map[string]struct{} {
	eligible := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.Category == models.CategoryPrivate {
			continue
		}
		eligible = append(eligible, n)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CreatedAt.After(eligible[j].CreatedAt)
	})

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}

	set := make(map[string]struct{}, len(eligible))
	for _, n := range eligible {
		set[n.ID] = struct{}{}
	}
	return set
}
