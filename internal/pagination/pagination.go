// Package pagination slices filtered, sorted collections into fixed
// size pages and computes the page-number window the footer renders.
// The main list and each sidebar folder sub-list paginate
// independently.
package pagination

// Default page sizes per content type.
const (
	DefaultCatalogPageSize    = 24
	DefaultNotesPageSize      = 30
	DefaultHighlightsPageSize = 50
)

// Gap marks an ellipsis slot in a page-number window.
const Gap = -1

// View tracks the current page over a collection whose length changes
// as filters do.
type View struct {
	size   int
	page   int
	total  int
	primed bool
}

// NewView builds a view with the given page size. Sizes below one
// collapse to one.
func NewView(size int) *View {
	if size < 1 {
		size = 1
	}
	return &View{size: size, page: 1}
}

// SetSize changes the page size, clamping the current page to the new
// bounds.
func (v *View) SetSize(size int) {
	if size < 1 {
		size = 1
	}
	v.size = size
	v.clamp()
}

// Apply records the collection length after a recompute. When the
// criteria changed the page resets to 1, except on the very first
// render, so a restored page survives startup. When only the length
// changed, the current page is preserved while still valid and clamped
// otherwise.
func (v *View) Apply(total int, criteriaChanged bool) {
	if total < 0 {
		total = 0
	}
	v.total = total

	if criteriaChanged && v.primed {
		v.page = 1
	}
	v.primed = true
	v.clamp()
}

func (v *View) clamp() {
	if v.page > v.TotalPages() {
		v.page = v.TotalPages()
	}
	if v.page < 1 {
		v.page = 1
	}
}

// Page returns the current 1-based page.
func (v *View) Page() int {
	return v.page
}

// TotalPages returns the page count, never less than one.
func (v *View) TotalPages() int {
	if v.total == 0 {
		return 1
	}
	return (v.total + v.size - 1) / v.size
}

// Next and Prev step the current page within bounds.
func (v *View) Next() {
	if v.page < v.TotalPages() {
		v.page++
	}
}

func (v *View) Prev() {
	if v.page > 1 {
		v.page--
	}
}

// GoTo jumps to a page, clamped to bounds.
func (v *View) GoTo(page int) {
	v.page = page
	v.clamp()
}

// Slice returns the half-open index range of the current page over a
// collection of the recorded length.
func (v *View) Slice() (start, end int) {
	start = (v.page - 1) * v.size
	if start > v.total {
		start = v.total
	}
	end = start + v.size
	if end > v.total {
		end = v.total
	}
	return start, end
}

// Window returns the page numbers to render: always the first and last
// page, the current page with one neighbor on each side, and Gap
// markers where pages were elided. For 12 pages on page 7 that is
// 1, Gap, 6, 7, 8, Gap, 12.
func (v *View) Window() []int {
	last := v.TotalPages()
	if last <= 1 {
		return []int{1}
	}

	keep := func(p int) bool {
		if p == 1 || p == last {
			return true
		}
		return p >= v.page-1 && p <= v.page+1
	}

	out := make([]int, 0, 7)
	gapped := false
	for p := 1; p <= last; p++ {
		if keep(p) {
			out = append(out, p)
			gapped = false
			continue
		}
		if !gapped {
			out = append(out, Gap)
			gapped = true
		}
	}
	return out
}
