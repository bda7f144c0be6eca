package library

import (
	"stacks/internal/filter"
	"stacks/internal/models"
	"stacks/internal/move"
	"stacks/internal/pagination"
)

type rowKind int

const (
	rowAll rowKind = iota
	rowCategory
	rowRoot
	rowFolder
	rowMore
)

// sidebarRow is one navigable line of the sidebar. Category headers,
// roots and folders double as drop targets.
type sidebarRow struct {
	kind     rowKind
	category models.Category
	folder   models.Folder
	count    int
	hidden   int
}

// targetID returns the encoded drop target for the row, or "" when the
// row is not a drop zone.
func (r sidebarRow) targetID() string {
	switch r.kind {
	case rowCategory:
		return move.GroupTargetID(r.category)
	case rowRoot:
		return move.RootTargetID(r.category)
	case rowFolder:
		return move.FolderTargetID(r.folder.ID)
	}
	return ""
}

// filterValue returns the folder filter the row selects, or "" when
// selecting it should only change the category.
func (r sidebarRow) filterValue() string {
	switch r.kind {
	case rowAll, rowCategory:
		return filter.FolderAll
	case rowRoot:
		return filter.FolderRoot
	case rowFolder:
		return r.folder.ID
	}
	return ""
}

// buildRows lays out the sidebar: the all-notes line, then each
// category group with its root and its revealed folder slice.
func (m *Model) buildRows() []sidebarRow {
	allCount := 0
	for c, n := range m.counts.Category {
		if c == models.CategoryPrivate {
			continue
		}
		allCount += n
	}

	rows := []sidebarRow{{kind: rowAll, count: allCount}}

	for _, c := range models.Categories {
		rows = append(rows, sidebarRow{
			kind:     rowCategory,
			category: c,
			count:    m.counts.Category[c],
		})
		rows = append(rows, sidebarRow{
			kind:     rowRoot,
			category: c,
			count:    m.counts.Root[c],
		})

		list := m.idx.ForCategory(c)
		reveal := m.revealFor(c)
		if m.filters.Folder != filter.FolderAll && m.filters.Folder != filter.FolderRoot {
			for i, f := range list {
				if f.ID == m.filters.Folder {
					reveal.Ensure(i)
					break
				}
			}
		}

		shown := reveal.Visible(len(list))
		for _, f := range list[:shown] {
			rows = append(rows, sidebarRow{
				kind:     rowFolder,
				category: c,
				folder:   f,
				count:    m.counts.ByFolder[f.ID],
			})
		}
		if reveal.HasMore(len(list)) {
			rows = append(rows, sidebarRow{
				kind:     rowMore,
				category: c,
				hidden:   len(list) - shown,
			})
		}
	}

	return rows
}

func (m *Model) revealFor(c models.Category) *pagination.Reveal {
	r, ok := m.reveals[c]
	if !ok {
		r = pagination.NewReveal(m.app.Config.FolderBatch)
		m.reveals[c] = r
	}
	return r
}

// selectedRow returns the sidebar row under the cursor.
func (m *Model) selectedRow() (sidebarRow, bool) {
	if m.sidebarIdx < 0 || m.sidebarIdx >= len(m.rows) {
		return sidebarRow{}, false
	}
	return m.rows[m.sidebarIdx], true
}

func (m *Model) clampSidebar() {
	if len(m.rows) == 0 {
		m.sidebarIdx = 0
		return
	}
	if m.sidebarIdx >= len(m.rows) {
		m.sidebarIdx = len(m.rows) - 1
	}
	if m.sidebarIdx < 0 {
		m.sidebarIdx = 0
	}
}
