package folders

import (
	"errors"
	"testing"
	"time"

	"stacks/internal/models"
)

func testFolders() []models.Folder {
	return []models.Folder{
		{ID: "f-journal", Category: models.CategoryDaily, Name: "Journal", Order: 2},
		{ID: "f-standup", Category: models.CategoryDaily, Name: "Standup", Order: 1},
		{ID: "f-drafts", Category: models.CategoryIdeas, Name: "Drafts", Order: 1},
		{ID: "f-also-1", Category: models.CategoryIdeas, Name: "Also", Order: 3},
		{ID: "f-also-2", Category: models.CategoryIdeas, Name: "Beta", Order: 3},
	}
}

func TestForCategoryOrdersByOrderThenName(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())

	daily := idx.ForCategory(models.CategoryDaily)
	if len(daily) != 2 {
		t.Fatalf("expected 2 daily folders, got %d", len(daily))
	}
	if daily[0].ID != "f-standup" || daily[1].ID != "f-journal" {
		t.Fatalf("daily folders out of order: %q, %q", daily[0].ID, daily[1].ID)
	}

	ideas := idx.ForCategory(models.CategoryIdeas)
	want := []string{"f-drafts", "f-also-1", "f-also-2"}
	for i, id := range want {
		if ideas[i].ID != id {
			t.Fatalf("ideas[%d] = %q, want %q", i, ideas[i].ID, id)
		}
	}
}

func TestResolveExplicitReferenceWins(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())
	n := models.Note{
		Category:   models.CategoryDaily,
		FolderID:   "f-journal",
		FolderPath: "Standup",
	}

	if got := idx.Resolve(n); got != "f-journal" {
		t.Fatalf("Resolve = %q, want %q", got, "f-journal")
	}
}

func TestResolveLegacyPathIsScopedAndNormalized(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())

	n := models.Note{Category: models.CategoryDaily, FolderPath: "  jouRNal "}
	if got := idx.Resolve(n); got != "f-journal" {
		t.Fatalf("Resolve = %q, want %q", got, "f-journal")
	}

	// Same name, wrong category: falls back to root.
	n = models.Note{Category: models.CategoryIdeas, FolderPath: "Journal"}
	if got := idx.Resolve(n); got != "" {
		t.Fatalf("cross-category legacy path resolved to %q, want root", got)
	}
}

func TestResolveCrossCategoryReferenceFallsToRoot(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())
	n := models.Note{Category: models.CategoryIdeas, FolderID: "f-journal"}

	if got := idx.Resolve(n); got != "" {
		t.Fatalf("cross-category reference resolved to %q, want root", got)
	}
	if _, ok := idx.ResolveFolder(n); ok {
		t.Fatal("ResolveFolder returned a folder for a cross-category reference")
	}
}

func TestResolveDanglingReferenceFallsToRoot(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())
	n := models.Note{Category: models.CategoryDaily, FolderID: "f-deleted"}

	if got := idx.Resolve(n); got != "" {
		t.Fatalf("dangling reference resolved to %q, want root", got)
	}
}

func TestResolveNeverCrossesCategories(t *testing.T) {
	t.Parallel()

	all := testFolders()
	idx := NewIndex(all)

	notes := []models.Note{
		{Category: models.CategoryDaily, FolderID: "f-drafts"},
		{Category: models.CategoryIdeas, FolderID: "f-journal"},
		{Category: models.CategoryPrivate, FolderPath: "journal"},
		{Category: models.CategoryDaily, FolderPath: "drafts"},
	}

	for i, n := range notes {
		f, ok := idx.ResolveFolder(n)
		if !ok {
			continue
		}
		if f.Category != n.Category {
			t.Fatalf("note %d resolved across categories: note %q, folder %q", i, n.Category, f.Category)
		}
	}
}

func TestCountNotes(t *testing.T) {
	t.Parallel()

	idx := NewIndex(testFolders())
	now := time.Now()
	notes := []models.Note{
		{ID: "1", Category: models.CategoryDaily, FolderID: "f-journal", CreatedAt: now},
		{ID: "2", Category: models.CategoryDaily, FolderPath: "journal", CreatedAt: now},
		{ID: "3", Category: models.CategoryDaily, CreatedAt: now},
		{ID: "4", Category: models.CategoryIdeas, FolderID: "f-journal", CreatedAt: now},
	}

	counts := idx.CountNotes(notes)

	if got := counts.ByFolder["f-journal"]; got != 2 {
		t.Fatalf("journal count = %d, want 2", got)
	}
	if got := counts.Root[models.CategoryDaily]; got != 1 {
		t.Fatalf("daily root count = %d, want 1", got)
	}
	// Note 4's reference is cross-category, so it lands at the ideas root.
	if got := counts.Root[models.CategoryIdeas]; got != 1 {
		t.Fatalf("ideas root count = %d, want 1", got)
	}
	if got := counts.Category[models.CategoryDaily]; got != 3 {
		t.Fatalf("daily category count = %d, want 3", got)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	existing := testFolders()

	if err := ValidateName(existing, models.CategoryDaily, "   ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank name: got %v, want ErrEmptyName", err)
	}
	if err := ValidateName(existing, models.CategoryDaily, "journal", ""); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicateName", err)
	}
	// Same name in a different category is fine.
	if err := ValidateName(existing, models.CategoryPrivate, "Journal", ""); err != nil {
		t.Fatalf("cross-category name: got %v, want nil", err)
	}
	// Renaming a folder to its own name is fine.
	if err := ValidateName(existing, models.CategoryDaily, "Journal", "f-journal"); err != nil {
		t.Fatalf("self rename: got %v, want nil", err)
	}
}
