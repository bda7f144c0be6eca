package store

import (
	"errors"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// LibraryChangedMsg notifies the TUI that the library file was written
// by someone else and the collections should be reloaded.
type LibraryChangedMsg struct{}

// WatcherErrMsg surfaces a watcher failure.
type WatcherErrMsg struct {
	Err error
}

// Watcher observes the library file for external writes. The watch is
// placed on the parent directory because atomic saves replace the file
// by rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the library file's directory.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("library path cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{watcher: w, path: filepath.Clean(path), done: make(chan struct{})}, nil
}

// Start returns a command that blocks until the library file changes,
// then delivers a message. The TUI re-issues the command after each
// message to keep the subscription alive.
func (w *Watcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				return LibraryChangedMsg{}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// Close shuts the watcher down exactly once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})
	return closeErr
}
