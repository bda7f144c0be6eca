// Package move runs the drag-and-drop session state machine: payload
// and target id encoding, destination resolution, non-optimistic
// commits through the store, and the single time-boxed undo slot.
//
// The gesture layer (TUI keys or mouse) owns gesture mechanics and
// guarantees a single live drag; this package owns everything after
// "something is being dragged".
package move

import (
	"errors"
	"fmt"
	"strings"

	"stacks/internal/models"
)

// DragKind tags the drag-session union.
type DragKind int

const (
	DragNone DragKind = iota
	DragNote
	DragFolder
)

// Drag is the current drag-session state: DragNone when idle, or the
// payload kind and id while a session is live.
type Drag struct {
	Kind DragKind
	ID   string
}

// Location is a note's (category, folder) position. FolderID is empty
// at the category root.
type Location struct {
	Category models.Category
	FolderID string
}

// Payload and target id prefixes. Drag sources and drop zones carry
// these encoded ids so a drop can be resolved without consulting the
// widget tree.
const (
	payloadNotePrefix   = "note:"
	payloadFolderPrefix = "folder:"
	targetRootPrefix    = "root:"
	targetGroupPrefix   = "group:"
	targetFolderPrefix  = "folder:"
)

// NotePayloadID encodes a note drag payload.
func NotePayloadID(noteID string) string {
	return payloadNotePrefix + noteID
}

// FolderPayloadID encodes a folder drag payload.
func FolderPayloadID(folderID string) string {
	return payloadFolderPrefix + folderID
}

// RootTargetID encodes a category-root drop zone.
func RootTargetID(c models.Category) string {
	return targetRootPrefix + string(c)
}

// GroupTargetID encodes a category-group drop zone. For notes it is
// equivalent to the category root.
func GroupTargetID(c models.Category) string {
	return targetGroupPrefix + string(c)
}

// FolderTargetID encodes a folder drop zone.
func FolderTargetID(folderID string) string {
	return targetFolderPrefix + folderID
}

// ErrBadPayload rejects a drag payload id that encodes neither a note
// nor a folder.
var ErrBadPayload = errors.New("unrecognized drag payload")

// ErrBadTarget rejects an undecodable or unknown drop target.
var ErrBadTarget = errors.New("unrecognized drop target")

// ParsePayload decodes a drag payload id.
func ParsePayload(id string) (Drag, error) {
	switch {
	case strings.HasPrefix(id, payloadNotePrefix):
		return Drag{Kind: DragNote, ID: strings.TrimPrefix(id, payloadNotePrefix)}, nil
	case strings.HasPrefix(id, payloadFolderPrefix):
		return Drag{Kind: DragFolder, ID: strings.TrimPrefix(id, payloadFolderPrefix)}, nil
	}
	return Drag{}, fmt.Errorf("%w: %q", ErrBadPayload, id)
}

// resolveTarget decodes a drop target id into a destination location.
// Folder targets take their category from the folder record.
func (c *Coordinator) resolveTarget(id string) (Location, error) {
	switch {
	case strings.HasPrefix(id, targetRootPrefix), strings.HasPrefix(id, targetGroupPrefix):
		raw := strings.TrimPrefix(strings.TrimPrefix(id, targetRootPrefix), targetGroupPrefix)
		cat, ok := models.ParseCategory(raw)
		if !ok {
			return Location{}, fmt.Errorf("%w: bad category %q", ErrBadTarget, raw)
		}
		return Location{Category: cat}, nil

	case strings.HasPrefix(id, targetFolderPrefix):
		folderID := strings.TrimPrefix(id, targetFolderPrefix)
		f, ok := c.folder(folderID)
		if !ok {
			return Location{}, fmt.Errorf("%w: unknown folder %q", ErrBadTarget, folderID)
		}
		return Location{Category: f.Category, FolderID: f.ID}, nil
	}

	return Location{}, fmt.Errorf("%w: %q", ErrBadTarget, id)
}
