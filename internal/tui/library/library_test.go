package library

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stacks/internal/config"
	"stacks/internal/filter"
	"stacks/internal/models"
	"stacks/internal/move"
	"stacks/internal/state"
	"stacks/internal/store"
)

func newTestModel(t *testing.T, seed func(s *store.FileStore)) *Model {
	t.Helper()

	home := t.TempDir()
	cfg := config.Default(home)
	cfg.DebounceMS = 1
	cfg.UndoMS = 5000

	st, err := store.Open(filepath.Join(home, "library.yaml"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if seed != nil {
		seed(st)
	}

	app := &state.State{Config: cfg, Store: st, Home: home}
	return NewModel(app)
}

func keyRunes(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestEmptyCollectionMessage(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)

	got := m.emptyMessage()
	if !strings.Contains(got, "No notes yet") {
		t.Fatalf("empty collection message = %q, want a capture hint", got)
	}
}

func TestNoResultsMessageNamesTheQuery(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(s *store.FileStore) {
		s.CreateNote(models.Note{Title: "Morning pages", Category: models.CategoryDaily})
	})

	m.debouncer.Set("xylophone")
	m.recompute(true)

	if m.resultCount() != 0 {
		t.Fatalf("resultCount = %d, want 0", m.resultCount())
	}
	got := m.emptyMessage()
	if !strings.Contains(got, "xylophone") {
		t.Fatalf("no-results message = %q, want it to name the query", got)
	}
}

func TestDebounceCommitResetsToPageOne(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(s *store.FileStore) {
		for i := 0; i < 70; i++ {
			s.CreateNote(models.Note{
				Title:    fmt.Sprintf("note %02d", i),
				Category: models.CategoryDaily,
			})
		}
	})

	m.pager().GoTo(3)
	if m.pager().Page() != 3 {
		t.Fatalf("setup: page = %d, want 3", m.pager().Page())
	}

	cmd := m.debouncer.Type("note 01")
	msg := cmd()
	m.Update(msg)

	if m.pager().Page() != 1 {
		t.Fatalf("page after committed search = %d, want 1", m.pager().Page())
	}
	if m.resultCount() != 1 {
		t.Fatalf("resultCount = %d, want 1", m.resultCount())
	}
}

func TestStaleDebounceCommitKeepsPage(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(s *store.FileStore) {
		for i := 0; i < 70; i++ {
			s.CreateNote(models.Note{
				Title:    fmt.Sprintf("note %02d", i),
				Category: models.CategoryDaily,
			})
		}
	})

	m.pager().GoTo(2)
	stale := m.debouncer.Type("no")
	staleMsg := stale()
	fresh := m.debouncer.Type("note")
	freshMsg := fresh()

	m.Update(staleMsg)
	if m.pager().Page() != 2 {
		t.Fatalf("page after stale commit = %d, want 2 (untouched)", m.pager().Page())
	}

	m.Update(freshMsg)
	if m.pager().Page() != 1 {
		t.Fatalf("page after live commit = %d, want 1", m.pager().Page())
	}
}

func TestActiveFolderFilterFollowsFolderMove(t *testing.T) {
	t.Parallel()

	var folderID string
	m := newTestModel(t, func(s *store.FileStore) {
		f, _ := s.CreateFolder(models.CategoryIdeas, "Sketches")
		folderID = f.ID
		n, _ := s.CreateNote(models.Note{Title: "wireframe", Category: models.CategoryIdeas})
		s.MoveNote(n.ID, models.CategoryIdeas, f.ID)
	})

	m.filters.Category = models.CategoryIdeas
	m.filters.Folder = folderID
	m.recompute(true)

	m.Update(move.FolderMovedMsg{
		FolderID: folderID,
		From:     models.CategoryIdeas,
		To:       models.CategoryDaily,
	})

	if m.filters.Category != models.CategoryDaily {
		t.Fatalf("category after folder move = %q, want %q", m.filters.Category, models.CategoryDaily)
	}
	if m.filters.Folder != folderID {
		t.Fatalf("folder filter after move = %q, want it kept", m.filters.Folder)
	}
}

func TestUnrelatedFolderMoveLeavesFilterAlone(t *testing.T) {
	t.Parallel()

	var folderID string
	m := newTestModel(t, func(s *store.FileStore) {
		f, _ := s.CreateFolder(models.CategoryIdeas, "Sketches")
		folderID = f.ID
	})

	m.Update(move.FolderMovedMsg{
		FolderID: folderID,
		From:     models.CategoryIdeas,
		To:       models.CategoryDaily,
	})

	if m.filters.Category != filter.CategoryAll {
		t.Fatalf("category = %q, want unchanged %q", m.filters.Category, filter.CategoryAll)
	}
}

func TestGrabDropAndUndoRoundTrip(t *testing.T) {
	t.Parallel()

	var noteID, folderID string
	m := newTestModel(t, func(s *store.FileStore) {
		n, _ := s.CreateNote(models.Note{Title: "wandering", Category: models.CategoryDaily})
		noteID = n.ID
		f, _ := s.CreateFolder(models.CategoryIdeas, "Sketches")
		folderID = f.ID
	})

	m.grabNote()
	if m.coord.Drag().Kind != move.DragNote {
		t.Fatalf("drag kind = %v, want DragNote", m.coord.Drag().Kind)
	}

	m.coord.Hover(move.FolderTargetID(folderID))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("drop produced no command")
	}

	msg := cmd()
	moved, ok := msg.(move.NoteMovedMsg)
	if !ok {
		t.Fatalf("drop result = %T, want NoteMovedMsg", msg)
	}
	m.Update(moved)

	got := findNote(t, m.app.Store, noteID)
	if got.Category != models.CategoryIdeas || got.FolderID != folderID {
		t.Fatalf("after drop: category %q folder %q, want %q %q",
			got.Category, got.FolderID, models.CategoryIdeas, folderID)
	}
	if !m.coord.CanUndo() {
		t.Fatal("undo not armed after a committed move")
	}
	if !strings.Contains(m.status, "undo") {
		t.Fatalf("status = %q, want an undo hint", m.status)
	}

	_, cmd = m.Update(keyRunes("u"))
	if cmd == nil {
		t.Fatal("undo produced no command")
	}
	m.Update(cmd())

	got = findNote(t, m.app.Store, noteID)
	if got.Category != models.CategoryDaily || got.FolderID != "" {
		t.Fatalf("after undo: category %q folder %q, want %q at root",
			got.Category, got.FolderID, models.CategoryDaily)
	}
	if m.coord.CanUndo() {
		t.Fatal("undo still armed after being consumed")
	}
}

func TestEscapeCancelsDragWithoutMutation(t *testing.T) {
	t.Parallel()

	var noteID string
	m := newTestModel(t, func(s *store.FileStore) {
		n, _ := s.CreateNote(models.Note{Title: "stationary", Category: models.CategoryDaily})
		noteID = n.ID
		s.CreateFolder(models.CategoryIdeas, "Sketches")
	})

	m.grabNote()
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.coord.Drag().Kind != move.DragNone {
		t.Fatalf("drag kind after escape = %v, want DragNone", m.coord.Drag().Kind)
	}
	got := findNote(t, m.app.Store, noteID)
	if got.Category != models.CategoryDaily {
		t.Fatalf("category after cancelled drag = %q, want %q", got.Category, models.CategoryDaily)
	}
}

func TestFolderDragOnlyTargetsCategoryGroups(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(s *store.FileStore) {
		s.CreateFolder(models.CategoryIdeas, "Sketches")
		s.CreateFolder(models.CategoryIdeas, "Plans")
	})

	m.focusSidebar = true
	for i, row := range m.rows {
		if row.kind == rowFolder {
			m.sidebarIdx = i
			break
		}
	}

	m.grabFolder()
	if m.coord.Drag().Kind != move.DragFolder {
		t.Fatalf("drag kind = %v, want DragFolder", m.coord.Drag().Kind)
	}

	for _, row := range m.rows {
		if row.kind != rowCategory && row.targetID() != "" && m.allowedTarget(row) {
			t.Fatalf("row kind %v allowed as folder drop target", row.kind)
		}
	}
}

func TestSidebarRevealsActiveFolderPastTheFold(t *testing.T) {
	t.Parallel()

	var deep string
	m := newTestModel(t, func(s *store.FileStore) {
		for i := 0; i < 20; i++ {
			f, err := s.CreateFolder(models.CategoryIdeas, fmt.Sprintf("Folder %02d", i))
			if err != nil {
				t.Fatalf("create folder: %v", err)
			}
			if i == 15 {
				deep = f.ID
			}
		}
	})

	m.filters.Category = models.CategoryIdeas
	m.filters.Folder = deep
	m.recompute(true)

	found := false
	for _, row := range m.rows {
		if row.kind == rowFolder && row.folder.ID == deep {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("active folder filter hidden behind the sidebar fold")
	}
}

func TestLibraryChangedReloadsCollections(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)

	other, err := store.Open(m.app.Store.Path())
	if err != nil {
		t.Fatalf("open second store: %v", err)
	}
	if _, err := other.CreateNote(models.Note{Title: "external", Category: models.CategoryDaily}); err != nil {
		t.Fatalf("external create: %v", err)
	}

	m.Update(store.LibraryChangedMsg{})

	if m.resultCount() != 1 {
		t.Fatalf("resultCount after reload = %d, want 1", m.resultCount())
	}
}

func TestTabSwitchUsesItsOwnPageSize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(s *store.FileStore) {
		for i := 0; i < 40; i++ {
			s.CreateNote(models.Note{
				Title:     fmt.Sprintf("note %02d", i),
				Category:  models.CategoryDaily,
				CreatedAt: time.Now(),
			})
		}
		for i := 0; i < 30; i++ {
			s.CreateItem(models.Item{
				Kind:  models.ItemBook,
				Title: fmt.Sprintf("book %02d", i),
			})
		}
	})

	if got := m.pager().TotalPages(); got != 2 {
		t.Fatalf("notes pages = %d, want 2 (40 notes at 30 a page)", got)
	}

	m.setTab(filter.TabBooks)
	if got := m.pager().TotalPages(); got != 2 {
		t.Fatalf("books pages = %d, want 2 (30 items at 24 a page)", got)
	}
	if m.resultCount() != 30 {
		t.Fatalf("book count = %d, want 30", m.resultCount())
	}
}

func findNote(t *testing.T, s *store.FileStore, id string) models.Note {
	t.Helper()
	for _, n := range s.Notes() {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("note %q not found", id)
	return models.Note{}
}
