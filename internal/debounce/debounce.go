// Package debounce buffers free-text search input and commits it after
// a quiet interval. The committed value is the only one the filter
// engine ever sees; the echo is what the input field renders.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the trailing quiet period before a commit.
const DefaultInterval = 300 * time.Millisecond

// CommitMsg fires when a scheduled commit comes due. Gen ties the
// message to the keystroke that scheduled it; a stale generation is
// ignored, which makes a superseded timer a guaranteed no-op.
type CommitMsg struct {
	Gen int
}

// Debouncer holds the immediate input echo and the committed query.
type Debouncer struct {
	interval  time.Duration
	echo      string
	committed string
	gen       int
}

// New builds a debouncer. A non-positive interval falls back to
// DefaultInterval.
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Echo returns the immediate input value.
func (d *Debouncer) Echo() string {
	return d.echo
}

// Committed returns the query the filter engine should use.
func (d *Debouncer) Committed() string {
	return d.committed
}

// Type records a keystroke and schedules a trailing commit. The
// returned command delivers a CommitMsg after the quiet interval; any
// earlier pending commit is invalidated by the generation bump.
func (d *Debouncer) Type(value string) tea.Cmd {
	d.echo = value
	d.gen++

	gen := d.gen
	return tea.Tick(d.interval, func(time.Time) tea.Msg {
		return CommitMsg{Gen: gen}
	})
}

// Commit applies a due CommitMsg. It reports whether the committed
// query changed, which is the caller's cue to reset pagination. Stale
// generations and no-op commits report false.
func (d *Debouncer) Commit(msg CommitMsg) bool {
	if msg.Gen != d.gen {
		return false
	}
	if d.committed == d.echo {
		return false
	}
	d.committed = d.echo
	return true
}

// Set overwrites both values at once, invalidating any pending commit.
// Used when the committed query changes from outside the input field,
// e.g. a tab switch clearing the search.
func (d *Debouncer) Set(value string) {
	d.gen++
	d.echo = value
	d.committed = value
}

// Clear resets the query.
func (d *Debouncer) Clear() {
	d.Set("")
}
