package library

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stacks/internal/filter"
	"stacks/internal/models"
	"stacks/internal/move"
	"stacks/internal/pagination"
	"stacks/internal/render"
)

// View renders the browser: tab bar, sidebar, result list, preview and
// the status line.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(),
		m.renderMain(),
		m.renderPreview(),
	)
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := []filter.Tab{
		filter.TabNotes,
		filter.TabBooks,
		filter.TabArticles,
		filter.TabWebsites,
		filter.TabHighlights,
	}

	parts := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		if t == m.filters.Tab {
			parts = append(parts, m.styles.tabActive.Render(t.String()))
		} else {
			parts = append(parts, m.styles.tab.Render(t.String()))
		}
	}

	bar := m.styles.tabBar.Render(strings.Join(parts, ""))
	if m.mode == modeSearch {
		return bar + "  " + m.searchBox.View()
	}
	if q := m.debouncer.Echo(); q != "" {
		return bar + "  " + m.styles.meta.Render("/ "+q)
	}
	return bar
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	hovered := m.coord.Hovered()
	dragging := m.coord.Drag().Kind != move.DragNone

	for i, row := range m.rows {
		line := m.renderRow(row)

		switch {
		case dragging && row.targetID() != "" && row.targetID() == hovered:
			line = m.styles.sidebarHover.Render(line)
		case row.filterValue() != "" && m.rowIsActive(row):
			line = m.styles.sidebarActive.Render(line)
		case m.focusSidebar && i == m.sidebarIdx && !dragging:
			line = m.styles.titleSelected.Render(line)
		case row.kind == rowCategory:
			line = m.styles.sidebarHeader.Render(line)
		case row.kind == rowMore:
			line = m.styles.sidebarDim.Render(line)
		default:
			line = m.styles.sidebarRow.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSmart())
	b.WriteString(m.renderTopTags())

	return m.styles.sidebar.Render(b.String())
}

func (m *Model) renderRow(row sidebarRow) string {
	switch row.kind {
	case rowAll:
		return fmt.Sprintf("All notes (%d)", row.count)
	case rowCategory:
		return fmt.Sprintf("%s (%d)", row.category.Label(), row.count)
	case rowRoot:
		return fmt.Sprintf("  Unfiled (%d)", row.count)
	case rowFolder:
		return fmt.Sprintf("  %s (%d)", row.folder.Name, row.count)
	case rowMore:
		return fmt.Sprintf("  … %d more", row.hidden)
	}
	return ""
}

func (m *Model) rowIsActive(row sidebarRow) bool {
	switch row.kind {
	case rowAll:
		return m.filters.Category == filter.CategoryAll && m.filters.Folder == filter.FolderAll
	case rowCategory:
		return m.filters.Category == row.category && m.filters.Folder == filter.FolderAll
	case rowRoot:
		return m.filters.Category == row.category && m.filters.Folder == filter.FolderRoot
	case rowFolder:
		return m.filters.Folder == row.folder.ID
	}
	return false
}

func (m *Model) renderSmart() string {
	fav := fmt.Sprintf("Favorites (%d)", m.smart.Favorites)
	rec := fmt.Sprintf("Recent (%d)", m.smart.Recent)

	if m.filters.Smart == filter.SmartFavorites {
		fav = m.styles.sidebarActive.Render(fav)
	} else {
		fav = m.styles.sidebarRow.Render(fav)
	}
	if m.filters.Smart == filter.SmartRecent {
		rec = m.styles.sidebarActive.Render(rec)
	} else {
		rec = m.styles.sidebarRow.Render(rec)
	}

	return fav + "\n" + rec + "\n"
}

func (m *Model) renderTopTags() string {
	if len(m.tags) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.sidebarHeader.Render("Top tags"))
	b.WriteString("\n")
	for _, tc := range m.tags {
		line := fmt.Sprintf("#%s (%d)", tc.Label, tc.Count)
		if tc.Key == m.filters.Tag {
			line = m.styles.sidebarActive.Render(line)
		} else {
			line = m.styles.tag.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMain() string {
	total := m.resultCount()
	if total == 0 {
		return m.styles.main.Render(m.styles.empty.Render(m.emptyMessage()))
	}

	start, end := m.pageBounds()

	var b strings.Builder
	switch {
	case m.items != nil:
		for i, item := range m.items[start:end] {
			b.WriteString(m.renderItemLine(item, !m.focusSidebar && i == m.cursor))
			b.WriteString("\n")
		}
	case m.filters.Tab == filter.TabHighlights:
		for i, h := range m.highlights[start:end] {
			b.WriteString(m.renderHighlightLine(h, !m.focusSidebar && i == m.cursor))
			b.WriteString("\n")
		}
	default:
		for i, n := range m.notes[start:end] {
			b.WriteString(m.renderNoteLine(n, !m.focusSidebar && i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderPageWindow())

	return m.styles.main.Render(b.String())
}

// emptyMessage distinguishes a collection with nothing in it from
// criteria that matched nothing.
func (m *Model) emptyMessage() string {
	if q := m.debouncer.Committed(); q != "" {
		return fmt.Sprintf("No results for %q.", q)
	}
	if m.filters.Tag != "" || m.filters.Smart != filter.SmartNone ||
		m.filters.Category != filter.CategoryAll || m.filters.Folder != filter.FolderAll ||
		m.filters.Status != "" || m.filters.Publisher != "" {
		return "Nothing matches the active filters. Press 0 to clear them."
	}

	switch m.filters.Tab {
	case filter.TabNotes:
		return "No notes yet. Capture one with `stacks capture`."
	case filter.TabHighlights:
		return "No highlights yet."
	default:
		return "Nothing cataloged here yet."
	}
}

func (m *Model) renderNoteLine(n models.Note, selected bool) string {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}

	style := m.styles.title
	cursor := "  "
	if selected {
		style = m.styles.titleSelected
		cursor = "> "
	}

	meta := n.Category.Label()
	if f, ok := m.idx.ResolveFolder(n); ok {
		meta += " / " + f.Name
	}
	if n.Favorite {
		meta += " ★"
	}

	line := cursor + style.Render(title) + "  " + m.styles.meta.Render(meta)
	if len(n.Tags) > 0 {
		line += "  " + m.styles.tag.Render("#"+strings.Join(n.TagKeys(), " #"))
	}
	return line
}

func (m *Model) renderItemLine(item models.Item, selected bool) string {
	style := m.styles.title
	cursor := "  "
	if selected {
		style = m.styles.titleSelected
		cursor = "> "
	}

	meta := string(item.Status)
	if item.Author != "" {
		if meta != "" {
			meta += " · "
		}
		meta += item.Author
	}
	if item.Publisher != "" {
		meta += " · " + item.Publisher
	}

	return cursor + style.Render(item.Title) + "  " + m.styles.meta.Render(meta)
}

func (m *Model) renderHighlightLine(h highlightRow, selected bool) string {
	style := m.styles.title
	cursor := "  "
	if selected {
		style = m.styles.titleSelected
		cursor = "> "
	}

	text := h.Text
	if len(text) > 80 {
		text = text[:77] + "..."
	}
	return cursor + style.Render(text) + "  " + m.styles.meta.Render("from "+h.NoteTitle)
}

// renderPageWindow prints the compressed page strip, e.g.
// "1 … 6 7 8 … 12".
func (m *Model) renderPageWindow() string {
	p := m.pager()
	if p.TotalPages() <= 1 {
		return m.styles.pager.Render(fmt.Sprintf("%d results", m.resultCount()))
	}

	parts := make([]string, 0, 8)
	for _, page := range p.Window() {
		if page == pagination.Gap {
			parts = append(parts, m.styles.pager.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", page)
		if page == p.Page() {
			parts = append(parts, m.styles.pagerCurrent.Render(label))
		} else {
			parts = append(parts, m.styles.pager.Render(label))
		}
	}

	strip := strings.Join(parts, " ")
	return strip + m.styles.pager.Render(fmt.Sprintf("   %d results", m.resultCount()))
}

func (m *Model) renderPreview() string {
	n, ok := m.selectedNote()
	if !ok || n.Body == "" {
		return ""
	}

	width := 60
	if m.width > 0 && m.width/3 < width {
		width = m.width / 3
	}

	key := fmt.Sprintf("%s:%d", n.ID, width)
	body, hit := m.previews.Get(key)
	if !hit {
		body = render.Markdown(n.Body, width)
		m.previews.Put(key, body)
	}

	return m.styles.preview.Render(body)
}

func (m *Model) renderFooter() string {
	switch m.mode {
	case modeNewFolder:
		return m.styles.prompt.Render("New folder: ") + m.input.View()
	case modeRenameFolder:
		return m.styles.prompt.Render("Rename folder: ") + m.input.View()
	}

	if m.coord.Drag().Kind != move.DragNone {
		what := "note"
		if m.coord.Drag().Kind == move.DragFolder {
			what = "folder"
		}
		return m.styles.dragBanner.Render(
			fmt.Sprintf("Moving %s: ↑/↓ pick destination, enter drops, esc cancels", what))
	}

	line := m.status
	if line == "" {
		line = "/: search  f: folders  m: move  u: undo  tab: switch  q: quit"
	}
	if m.coord.CanUndo() {
		line += "  (u undoes the last move)"
	}

	if m.statusErr {
		return m.styles.statusError.Render(line)
	}
	return m.styles.status.Render(line)
}
