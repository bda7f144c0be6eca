package pagination

// Reveal paginates a sidebar folder sub-list with an incremental "load
// more" instead of discrete pages.
type Reveal struct {
	batch   int
	visible int
}

// DefaultFolderBatch is how many folders each "load more" uncovers.
const DefaultFolderBatch = 8

// NewReveal builds a reveal with the given batch size.
func NewReveal(batch int) *Reveal {
	if batch < 1 {
		batch = 1
	}
	return &Reveal{batch: batch, visible: batch}
}

// Visible returns how many entries of a total-length list to show.
func (r *Reveal) Visible(total int) int {
	if r.visible > total {
		return total
	}
	return r.visible
}

// HasMore reports whether entries remain hidden.
func (r *Reveal) HasMore(total int) bool {
	return total > r.visible
}

// More uncovers the next batch.
func (r *Reveal) More() {
	r.visible += r.batch
}

// Ensure expands the visible count in whole batches until the entry at
// index is shown, so an active folder filter is never hidden behind the
// fold.
func (r *Reveal) Ensure(index int) {
	for index >= r.visible {
		r.visible += r.batch
	}
}

// Reset collapses back to a single batch.
func (r *Reveal) Reset() {
	r.visible = r.batch
}
