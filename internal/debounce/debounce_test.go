package debounce

import (
	"testing"
	"time"
)

func TestCommitAppliesLatestEcho(t *testing.T) {
	t.Parallel()

	d := New(time.Millisecond)
	d.Type("sto")
	d.Type("stoi")
	d.Type("stoic")

	if d.Committed() != "" {
		t.Fatalf("committed before quiet interval: %q", d.Committed())
	}

	if changed := d.Commit(CommitMsg{Gen: 3}); !changed {
		t.Fatal("expected commit to change the query")
	}
	if d.Committed() != "stoic" {
		t.Fatalf("committed = %q, want %q", d.Committed(), "stoic")
	}
}

func TestStaleGenerationIsNoOp(t *testing.T) {
	t.Parallel()

	d := New(time.Millisecond)
	d.Type("sto")
	d.Type("stoic")

	// The first keystroke's timer fires after being superseded.
	if changed := d.Commit(CommitMsg{Gen: 1}); changed {
		t.Fatal("stale commit changed the query")
	}
	if d.Committed() != "" {
		t.Fatalf("committed = %q, want empty", d.Committed())
	}
}

func TestCommitSameValueReportsUnchanged(t *testing.T) {
	t.Parallel()

	d := New(time.Millisecond)
	d.Set("stoic")
	d.Type("stoic")

	if changed := d.Commit(CommitMsg{Gen: d.gen}); changed {
		t.Fatal("identical commit reported a change")
	}
}

func TestSetResynchronizesEchoAndInvalidatesPending(t *testing.T) {
	t.Parallel()

	d := New(time.Millisecond)
	d.Type("stoic")
	pendingGen := d.gen

	// External clear, e.g. a tab switch.
	d.Clear()
	if d.Echo() != "" || d.Committed() != "" {
		t.Fatalf("clear left echo %q committed %q", d.Echo(), d.Committed())
	}

	if changed := d.Commit(CommitMsg{Gen: pendingGen}); changed {
		t.Fatal("pending commit survived an external overwrite")
	}
}

func TestTypeReturnsTickCommand(t *testing.T) {
	t.Parallel()

	d := New(time.Millisecond)
	if cmd := d.Type("s"); cmd == nil {
		t.Fatal("expected a scheduled commit command")
	}
}
