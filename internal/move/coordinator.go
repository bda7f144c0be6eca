package move

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stacks/internal/models"
)

// DefaultUndoWindow is how long a committed move stays reversible.
const DefaultUndoWindow = 5 * time.Second

// Store is the slice of the external note/folder stores the
// coordinator mutates. Both calls are synchronous here; the TUI runs
// them inside tea commands so the event loop never blocks.
type Store interface {
	MoveNote(noteID string, c models.Category, folderID string) error
	MoveFolderCategory(folderID string, c models.Category) error
}

// NoteMovedMsg reports a committed note move.
type NoteMovedMsg struct {
	NoteID string
	From   Location
	To     Location
}

// FolderMovedMsg reports a committed folder category move.
type FolderMovedMsg struct {
	FolderID string
	From     models.Category
	To       models.Category
}

// UndoneMsg reports a committed undo.
type UndoneMsg struct {
	NoteID     string
	RestoredTo Location
}

// ErrorMsg reports a rejected mutation. All in-memory state is left
// untouched when it arrives; surfacing it is the caller's job.
type ErrorMsg struct {
	Err error
}

// undoExpiredMsg fires when the undo window lapses. Gen ties it to the
// token that armed it, so a timer surviving a supersede is a no-op.
type undoExpiredMsg struct {
	Gen int
}

// Undo captures a note's pre-move location for the reversal window.
type Undo struct {
	NoteID        string
	PriorCategory models.Category
	PriorFolderID string
	ExpiresAt     time.Time
}

// ErrDragActive rejects starting a drag while one is live.
var ErrDragActive = errors.New("drag session already active")

// ErrNoDrag rejects a drop with no live drag session.
var ErrNoDrag = errors.New("no drag session active")

// Coordinator is the drag-and-drop session state machine. It is driven
// entirely from the single-threaded event loop; mutations run in
// commands and report back as messages.
type Coordinator struct {
	store        Store
	folder       func(id string) (models.Folder, bool)
	noteLocation func(id string) (Location, bool)

	drag  Drag
	hover string

	undo    *Undo
	undoGen int

	window time.Duration
	now    func() time.Time
}

// NewCoordinator wires the coordinator to the store and the index
// accessors it resolves targets with.
func NewCoordinator(
	store Store,
	folder func(id string) (models.Folder, bool),
	noteLocation func(id string) (Location, bool),
) *Coordinator {
	return &Coordinator{
		store:        store,
		folder:       folder,
		noteLocation: noteLocation,
		window:       DefaultUndoWindow,
		now:          time.Now,
	}
}

// SetUndoWindow overrides the reversal window.
func (c *Coordinator) SetUndoWindow(d time.Duration) {
	if d > 0 {
		c.window = d
	}
}

// Drag returns the current session state for visual feedback.
func (c *Coordinator) Drag() Drag {
	return c.drag
}

// Hovered returns the drop target currently under the drag, for
// highlight rendering only.
func (c *Coordinator) Hovered() string {
	return c.hover
}

// StartDrag opens a session from an encoded payload id.
func (c *Coordinator) StartDrag(payloadID string) error {
	if c.drag.Kind != DragNone {
		return ErrDragActive
	}

	drag, err := ParsePayload(payloadID)
	if err != nil {
		return err
	}

	c.drag = drag
	c.hover = ""
	return nil
}

// Hover records the drop target under the drag.
func (c *Coordinator) Hover(targetID string) {
	if c.drag.Kind == DragNone {
		return
	}
	c.hover = targetID
}

// Cancel ends the session with no side effects.
func (c *Coordinator) Cancel() {
	c.drag = Drag{}
	c.hover = ""
}

// Drop resolves the target and returns the command that commits the
// move. The session always ends here; the mutation outcome arrives
// later as a message. A nil command means nothing to do (no session,
// bad target, or a same-category folder move); the error explains the
// first two. State is never touched before the mutation succeeds.
func (c *Coordinator) Drop(targetID string) (tea.Cmd, error) {
	drag := c.drag
	c.Cancel()

	if drag.Kind == DragNone {
		return nil, ErrNoDrag
	}

	dest, err := c.resolveTarget(targetID)
	if err != nil {
		return nil, err
	}

	switch drag.Kind {
	case DragNote:
		prior, ok := c.noteLocation(drag.ID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown note %q", ErrBadTarget, drag.ID)
		}
		return c.commitNote(drag.ID, prior, dest), nil

	case DragFolder:
		f, ok := c.folder(drag.ID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown folder %q", ErrBadTarget, drag.ID)
		}
		if f.Category == dest.Category {
			// Moving a folder into its own category is a no-op.
			return nil, nil
		}
		return c.commitFolder(f.ID, f.Category, dest.Category), nil
	}

	return nil, ErrNoDrag
}

func (c *Coordinator) commitNote(noteID string, prior, dest Location) tea.Cmd {
	return func() tea.Msg {
		if err := c.store.MoveNote(noteID, dest.Category, dest.FolderID); err != nil {
			return ErrorMsg{Err: err}
		}
		return NoteMovedMsg{NoteID: noteID, From: prior, To: dest}
	}
}

func (c *Coordinator) commitFolder(folderID string, from, to models.Category) tea.Cmd {
	return func() tea.Msg {
		if err := c.store.MoveFolderCategory(folderID, to); err != nil {
			return ErrorMsg{Err: err}
		}
		return FolderMovedMsg{FolderID: folderID, From: from, To: to}
	}
}

// ScheduleUndo arms the undo slot from a successful move, replacing any
// previous token, and returns the expiry timer command. Last move
// wins; exactly one token lives at a time.
func (c *Coordinator) ScheduleUndo(msg NoteMovedMsg) tea.Cmd {
	c.undoGen++
	c.undo = &Undo{
		NoteID:        msg.NoteID,
		PriorCategory: msg.From.Category,
		PriorFolderID: msg.From.FolderID,
		ExpiresAt:     c.now().Add(c.window),
	}

	gen := c.undoGen
	return tea.Tick(c.window, func(time.Time) tea.Msg {
		return undoExpiredMsg{Gen: gen}
	})
}

// CanUndo reports whether a live token exists.
func (c *Coordinator) CanUndo() bool {
	return c.undo != nil && !c.now().After(c.undo.ExpiresAt)
}

// PendingUndo returns a copy of the live token, if any.
func (c *Coordinator) PendingUndo() (Undo, bool) {
	if !c.CanUndo() {
		return Undo{}, false
	}
	return *c.undo, true
}

// Undo consumes the token and returns the command that re-invokes the
// move with the captured pre-move values. Consumption happens at
// invocation: the token is cleared and its timer invalidated before
// the mutation runs, so a successful undo can never arm a redo. With
// no live token, Undo returns nil.
func (c *Coordinator) Undo() tea.Cmd {
	if !c.CanUndo() {
		c.undo = nil
		return nil
	}

	token := *c.undo
	c.undo = nil
	c.undoGen++

	return func() tea.Msg {
		if err := c.store.MoveNote(token.NoteID, token.PriorCategory, token.PriorFolderID); err != nil {
			return ErrorMsg{Err: err}
		}
		return UndoneMsg{
			NoteID:     token.NoteID,
			RestoredTo: Location{Category: token.PriorCategory, FolderID: token.PriorFolderID},
		}
	}
}

// Expire applies an expiry message. A stale generation, meaning the
// timer's token was superseded or consumed, is a guaranteed no-op.
func (c *Coordinator) Expire(msg tea.Msg) {
	expired, ok := msg.(undoExpiredMsg)
	if !ok {
		return
	}
	if expired.Gen != c.undoGen {
		return
	}
	c.undo = nil
}
