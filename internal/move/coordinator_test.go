package move

import (
	"errors"
	"testing"
	"time"

	"stacks/internal/folders"
	"stacks/internal/models"
)

type fakeStore struct {
	notes   map[string]Location
	folders map[string]models.Folder
	fail    error
	moves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notes: map[string]Location{
			"n1": {Category: models.CategoryDaily, FolderID: "f-journal"},
			"n2": {Category: models.CategoryIdeas},
		},
		folders: map[string]models.Folder{
			"f-journal": {ID: "f-journal", Category: models.CategoryDaily, Name: "Journal"},
			"f-drafts":  {ID: "f-drafts", Category: models.CategoryIdeas, Name: "Drafts"},
		},
	}
}

func (s *fakeStore) MoveNote(noteID string, c models.Category, folderID string) error {
	if s.fail != nil {
		return s.fail
	}
	s.notes[noteID] = Location{Category: c, FolderID: folderID}
	s.moves++
	return nil
}

func (s *fakeStore) MoveFolderCategory(folderID string, c models.Category) error {
	if s.fail != nil {
		return s.fail
	}
	f := s.folders[folderID]
	f.Category = c
	s.folders[folderID] = f
	s.moves++
	return nil
}

func newTestCoordinator(s *fakeStore) *Coordinator {
	return NewCoordinator(s,
		func(id string) (models.Folder, bool) {
			f, ok := s.folders[id]
			return f, ok
		},
		func(id string) (Location, bool) {
			loc, ok := s.notes[id]
			return loc, ok
		},
	)
}

func run(t *testing.T, c *Coordinator, targetID string) interface{} {
	t.Helper()
	cmd, err := c.Drop(targetID)
	if err != nil {
		t.Fatalf("Drop(%q) returned error: %v", targetID, err)
	}
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestDragSessionTransitions(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(newFakeStore())

	if c.Drag().Kind != DragNone {
		t.Fatal("expected idle session")
	}

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if got := c.Drag(); got.Kind != DragNote || got.ID != "n1" {
		t.Fatalf("drag = %+v, want note n1", got)
	}

	if err := c.StartDrag(NotePayloadID("n2")); !errors.Is(err, ErrDragActive) {
		t.Fatalf("second drag: got %v, want ErrDragActive", err)
	}

	c.Hover(FolderTargetID("f-drafts"))
	if got := c.Hovered(); got != FolderTargetID("f-drafts") {
		t.Fatalf("hover = %q", got)
	}

	c.Cancel()
	if c.Drag().Kind != DragNone || c.Hovered() != "" {
		t.Fatal("cancel left session state behind")
	}
}

func TestDropNoteIntoFolderResolvesCategory(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	msg := run(t, c, FolderTargetID("f-drafts"))

	moved, ok := msg.(NoteMovedMsg)
	if !ok {
		t.Fatalf("expected NoteMovedMsg, got %T", msg)
	}
	if moved.To.Category != models.CategoryIdeas || moved.To.FolderID != "f-drafts" {
		t.Fatalf("destination = %+v", moved.To)
	}
	if moved.From.Category != models.CategoryDaily || moved.From.FolderID != "f-journal" {
		t.Fatalf("prior = %+v", moved.From)
	}
	if got := s.notes["n1"]; got.Category != models.CategoryIdeas {
		t.Fatalf("store location = %+v", got)
	}
	if c.Drag().Kind != DragNone {
		t.Fatal("session still live after drop")
	}
}

func TestDropWithoutSession(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(newFakeStore())
	if _, err := c.Drop(RootTargetID(models.CategoryIdeas)); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("got %v, want ErrNoDrag", err)
	}
}

func TestUndoRestoresExactPriorPair(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	// Move n1 from daily/f-journal to the ideas root.
	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	msg := run(t, c, RootTargetID(models.CategoryIdeas))
	moved := msg.(NoteMovedMsg)

	if cmd := c.ScheduleUndo(moved); cmd == nil {
		t.Fatal("expected expiry timer command")
	}
	if !c.CanUndo() {
		t.Fatal("expected live undo token")
	}

	undoCmd := c.Undo()
	if undoCmd == nil {
		t.Fatal("expected undo command")
	}
	undone, ok := undoCmd().(UndoneMsg)
	if !ok {
		t.Fatal("expected UndoneMsg")
	}
	if undone.RestoredTo.Category != models.CategoryDaily || undone.RestoredTo.FolderID != "f-journal" {
		t.Fatalf("restored to %+v, want daily/f-journal", undone.RestoredTo)
	}
	if got := s.notes["n1"]; got.Category != models.CategoryDaily || got.FolderID != "f-journal" {
		t.Fatalf("store location = %+v", got)
	}

	// Consuming the token must not arm a redo.
	if c.CanUndo() {
		t.Fatal("undo token survived consumption")
	}
	if cmd := c.Undo(); cmd != nil {
		t.Fatal("second undo produced a command")
	}
}

func TestSecondMoveSupersedesUndoToken(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	first := run(t, c, RootTargetID(models.CategoryIdeas)).(NoteMovedMsg)
	c.ScheduleUndo(first)

	if err := c.StartDrag(NotePayloadID("n2")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	second := run(t, c, FolderTargetID("f-journal")).(NoteMovedMsg)
	c.ScheduleUndo(second)

	token, ok := c.PendingUndo()
	if !ok {
		t.Fatal("expected live token")
	}
	if token.NoteID != "n2" {
		t.Fatalf("token note = %q, want n2 (last move wins)", token.NoteID)
	}

	// Undo restores the second move's prior state, not the first's.
	undone := c.Undo()().(UndoneMsg)
	if undone.NoteID != "n2" || undone.RestoredTo.Category != models.CategoryIdeas {
		t.Fatalf("undone = %+v", undone)
	}
	if got := s.notes["n1"]; got.Category != models.CategoryIdeas {
		t.Fatalf("first move was reverted: %+v", got)
	}
}

func TestSupersededTimerFireIsNoOp(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	first := run(t, c, RootTargetID(models.CategoryIdeas)).(NoteMovedMsg)
	c.ScheduleUndo(first)
	staleGen := c.undoGen

	if err := c.StartDrag(NotePayloadID("n2")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	second := run(t, c, FolderTargetID("f-journal")).(NoteMovedMsg)
	c.ScheduleUndo(second)

	// The first token's timer fires late.
	c.Expire(undoExpiredMsg{Gen: staleGen})
	if !c.CanUndo() {
		t.Fatal("stale expiry cleared the live token")
	}

	// The live token's own expiry clears it.
	c.Expire(undoExpiredMsg{Gen: c.undoGen})
	if c.CanUndo() {
		t.Fatal("expected token expired")
	}
}

func TestExpiredTokenCannotBeUndone(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)
	c.SetUndoWindow(time.Second)

	clock := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	moved := run(t, c, RootTargetID(models.CategoryIdeas)).(NoteMovedMsg)
	c.ScheduleUndo(moved)

	clock = clock.Add(2 * time.Second)
	if c.CanUndo() {
		t.Fatal("token usable past expiry")
	}
	if cmd := c.Undo(); cmd != nil {
		t.Fatal("expired undo produced a command")
	}
}

func TestFolderMoveSameCategoryIsNoOp(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	if err := c.StartDrag(FolderPayloadID("f-journal")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	cmd, err := c.Drop(GroupTargetID(models.CategoryDaily))
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if cmd != nil {
		t.Fatal("same-category folder move produced a command")
	}
	if s.moves != 0 {
		t.Fatalf("store mutated %d times, want 0", s.moves)
	}
	if c.CanUndo() {
		t.Fatal("no-op armed an undo token")
	}
}

func TestFolderMoveAcrossCategories(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)

	if err := c.StartDrag(FolderPayloadID("f-journal")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	msg := run(t, c, GroupTargetID(models.CategoryIdeas))

	moved, ok := msg.(FolderMovedMsg)
	if !ok {
		t.Fatalf("expected FolderMovedMsg, got %T", msg)
	}
	if moved.From != models.CategoryDaily || moved.To != models.CategoryIdeas {
		t.Fatalf("moved = %+v", moved)
	}
	if got := s.folders["f-journal"].Category; got != models.CategoryIdeas {
		t.Fatalf("store category = %q", got)
	}

	// The folder's notes follow implicitly through resolution.
	idx := folders.NewIndex([]models.Folder{s.folders["f-journal"]})
	n := models.Note{Category: models.CategoryIdeas, FolderID: "f-journal"}
	if got := idx.Resolve(n); got != "f-journal" {
		t.Fatalf("resolution after folder move = %q", got)
	}
}

func TestFailedMutationLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	c := newTestCoordinator(s)
	s.fail = errors.New("store rejected")

	if err := c.StartDrag(NotePayloadID("n1")); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	msg := run(t, c, RootTargetID(models.CategoryIdeas))

	errMsg, ok := msg.(ErrorMsg)
	if !ok {
		t.Fatalf("expected ErrorMsg, got %T", msg)
	}
	if errMsg.Err == nil {
		t.Fatal("expected wrapped error")
	}
	if got := s.notes["n1"]; got.Category != models.CategoryDaily {
		t.Fatalf("note moved despite failure: %+v", got)
	}
	// A failed move never schedules an undo.
	if c.CanUndo() {
		t.Fatal("failed move armed an undo token")
	}
}
