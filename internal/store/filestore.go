package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"stacks/internal/folders"
	"stacks/internal/models"
)

// ErrNotFound signals an id with no matching record.
var ErrNotFound = errors.New("record not found")

// ErrBadCategory rejects an invalid note category.
var ErrBadCategory = errors.New("invalid category")

// NoteStore is the readable note collection plus its mutations. All
// mutations persist before they return; a returned error means nothing
// changed.
type NoteStore interface {
	Notes() []models.Note
	CreateNote(n models.Note) (models.Note, error)
	MoveNote(noteID string, c models.Category, folderID string) error
	ToggleFavorite(noteID string) error
	DeleteNote(noteID string) error
}

// FolderStore is the readable folder collection plus its mutations.
type FolderStore interface {
	Folders() []models.Folder
	CreateFolder(c models.Category, name string) (models.Folder, error)
	RenameFolder(folderID, name string) error
	DeleteFolder(folderID string) error
	MoveFolderCategory(folderID string, c models.Category) error
}

// FileStore keeps the whole library in one yaml document on disk.
// Every mutation rewrites the file atomically so a crash never leaves
// a half-written library. Mutations run inside command goroutines
// while the event loop reads the collections, so the document is
// guarded by mu.
type FileStore struct {
	path string

	mu  sync.RWMutex
	doc document

	now   func() time.Time
	newID func() string
}

// Open loads the library at path, creating an empty one when the file
// does not exist yet.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}

	if err := s.Reload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		s.doc = document{}
	}

	return s, nil
}

// Init writes an empty library file at path when none exists. An
// existing file is left alone.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	s := &FileStore{path: path}
	return s.save()
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Reload replaces the in-memory collections from disk. Called at open
// and whenever the watcher reports an external write.
func (s *FileStore) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse library %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// save writes the document to a temp file and renames it into place.
// The caller holds mu.
func (s *FileStore) save() error {
	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".library-*.yaml")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Notes returns the note collection.
func (s *FileStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, 0, len(s.doc.Notes))
	for _, d := range s.doc.Notes {
		out = append(out, d.toModel())
	}
	return out
}

// Folders returns the folder collection.
func (s *FileStore) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foldersLocked()
}

// foldersLocked converts the folder docs. The caller holds mu.
func (s *FileStore) foldersLocked() []models.Folder {
	out := make([]models.Folder, 0, len(s.doc.Folders))
	for _, d := range s.doc.Folders {
		out = append(out, d.toModel())
	}
	return out
}

// Items returns the catalog collection.
func (s *FileStore) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0, len(s.doc.Items))
	for _, d := range s.doc.Items {
		out = append(out, d.toModel())
	}
	return out
}

// CreateNote persists a new note. Missing id and timestamp are filled
// in; the category must be valid.
func (s *FileStore) CreateNote(n models.Note) (models.Note, error) {
	if !n.Category.Valid() {
		return models.Note{}, fmt.Errorf("%w: %q", ErrBadCategory, n.Category)
	}

	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Notes = append(s.doc.Notes, noteToDoc(n))
	if err := s.save(); err != nil {
		s.doc.Notes = s.doc.Notes[:len(s.doc.Notes)-1]
		return models.Note{}, err
	}
	return n, nil
}

// MoveNote relocates a note to the destination category and folder
// ("" for the category root). The legacy folder path is cleared: after
// an explicit move the reference is authoritative.
func (s *FileStore) MoveNote(noteID string, c models.Category, folderID string) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrBadCategory, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.noteIndex(noteID)
	if err != nil {
		return err
	}

	prev := s.doc.Notes[i]
	s.doc.Notes[i].Category = string(c)
	s.doc.Notes[i].FolderID = folderID
	s.doc.Notes[i].FolderPath = ""

	if err := s.save(); err != nil {
		s.doc.Notes[i] = prev
		return err
	}
	return nil
}

// ToggleFavorite flips the favorite flag.
func (s *FileStore) ToggleFavorite(noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.noteIndex(noteID)
	if err != nil {
		return err
	}

	s.doc.Notes[i].Favorite = !s.doc.Notes[i].Favorite
	if err := s.save(); err != nil {
		s.doc.Notes[i].Favorite = !s.doc.Notes[i].Favorite
		return err
	}
	return nil
}

// DeleteNote removes a note.
func (s *FileStore) DeleteNote(noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.noteIndex(noteID)
	if err != nil {
		return err
	}

	removed := s.doc.Notes[i]
	s.doc.Notes = append(s.doc.Notes[:i], s.doc.Notes[i+1:]...)
	if err := s.save(); err != nil {
		s.doc.Notes = append(s.doc.Notes[:i], append([]noteDoc{removed}, s.doc.Notes[i:]...)...)
		return err
	}
	return nil
}

// CreateFolder appends a folder at the end of the category's ordering.
// The name is validated against the current collection first.
func (s *FileStore) CreateFolder(c models.Category, name string) (models.Folder, error) {
	if !c.Valid() {
		return models.Folder{}, fmt.Errorf("%w: %q", ErrBadCategory, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := folders.ValidateName(s.foldersLocked(), c, name, ""); err != nil {
		return models.Folder{}, err
	}

	order := 0
	for _, f := range s.doc.Folders {
		if f.Category == string(c) && f.Order >= order {
			order = f.Order + 1
		}
	}

	f := models.Folder{ID: s.newID(), Category: c, Name: name, Order: order}
	s.doc.Folders = append(s.doc.Folders, folderToDoc(f))
	if err := s.save(); err != nil {
		s.doc.Folders = s.doc.Folders[:len(s.doc.Folders)-1]
		return models.Folder{}, err
	}
	return f, nil
}

// RenameFolder changes a folder's name after validating it against its
// siblings.
func (s *FileStore) RenameFolder(folderID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.folderIndex(folderID)
	if err != nil {
		return err
	}

	c := models.Category(s.doc.Folders[i].Category)
	if err := folders.ValidateName(s.foldersLocked(), c, name, folderID); err != nil {
		return err
	}

	prev := s.doc.Folders[i].Name
	s.doc.Folders[i].Name = name
	if err := s.save(); err != nil {
		s.doc.Folders[i].Name = prev
		return err
	}
	return nil
}

// DeleteFolder removes a folder. Contained notes lose their explicit
// reference and fall back to the category root; no dangling reference
// survives.
func (s *FileStore) DeleteFolder(folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.folderIndex(folderID)
	if err != nil {
		return err
	}

	prevFolders := append([]folderDoc(nil), s.doc.Folders...)
	prevNotes := append([]noteDoc(nil), s.doc.Notes...)

	s.doc.Folders = append(s.doc.Folders[:i], s.doc.Folders[i+1:]...)
	for j := range s.doc.Notes {
		if s.doc.Notes[j].FolderID == folderID {
			s.doc.Notes[j].FolderID = ""
		}
	}

	if err := s.save(); err != nil {
		s.doc.Folders = prevFolders
		s.doc.Notes = prevNotes
		return err
	}
	return nil
}

// MoveFolderCategory reassigns a folder to another category and brings
// its explicitly-referenced notes along, keeping note and folder
// categories in agreement. A move into the folder's current category
// is a no-op.
func (s *FileStore) MoveFolderCategory(folderID string, c models.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrBadCategory, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.folderIndex(folderID)
	if err != nil {
		return err
	}
	if s.doc.Folders[i].Category == string(c) {
		return nil
	}

	prevFolders := append([]folderDoc(nil), s.doc.Folders...)
	prevNotes := append([]noteDoc(nil), s.doc.Notes...)

	s.doc.Folders[i].Category = string(c)
	for j := range s.doc.Notes {
		if s.doc.Notes[j].FolderID == folderID {
			s.doc.Notes[j].Category = string(c)
		}
	}

	if err := s.save(); err != nil {
		s.doc.Folders = prevFolders
		s.doc.Notes = prevNotes
		return err
	}
	return nil
}

// CreateItem persists a new catalog item.
func (s *FileStore) CreateItem(i models.Item) (models.Item, error) {
	if i.ID == "" {
		i.ID = s.newID()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Items = append(s.doc.Items, itemToDoc(i))
	if err := s.save(); err != nil {
		s.doc.Items = s.doc.Items[:len(s.doc.Items)-1]
		return models.Item{}, err
	}
	return i, nil
}

// noteIndex and folderIndex are called with mu held.
func (s *FileStore) noteIndex(id string) (int, error) {
	for i, n := range s.doc.Notes {
		if n.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: note %q", ErrNotFound, id)
}

func (s *FileStore) folderIndex(id string) (int, error) {
	for i, f := range s.doc.Folders {
		if f.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: folder %q", ErrNotFound, id)
}
