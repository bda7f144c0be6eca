// Package library is the interactive library browser: tabs across the
// content types, the category/folder sidebar, debounced search,
// pagination, and keyboard-driven note and folder relocation.
package library

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stacks/internal/debounce"
	"stacks/internal/filter"
	"stacks/internal/folders"
	"stacks/internal/models"
	"stacks/internal/move"
	"stacks/internal/pagination"
	"stacks/internal/render"
	"stacks/internal/state"
	"stacks/internal/store"
)

type inputMode int

const (
	modeNone inputMode = iota
	modeSearch
	modeNewFolder
	modeRenameFolder
	modeConfirmDeleteFolder
	modeConfirmDeleteNote
)

// highlightRow is one line of the flattened highlights tab.
type highlightRow struct {
	NoteID    string
	NoteTitle string
	Text      string
	Source    string
}

// Model is the library browser. All derived state (filtered notes,
// sidebar rows, counts, aggregates) is recomputed in full whenever the
// collections or the criteria change.
type Model struct {
	app    *state.State
	keys   *keyMap
	styles *styles

	engine  *filter.Engine
	filters filter.State

	idx    *folders.Index
	counts folders.Counts

	notes      []models.Note
	items      []models.Item
	highlights []highlightRow
	tags       []filter.TagCount
	smart      filter.SmartCounts

	debouncer *debounce.Debouncer
	searchBox textinput.Model

	pagers  map[filter.Tab]*pagination.View
	reveals map[models.Category]*pagination.Reveal

	coord *move.Coordinator

	rows         []sidebarRow
	sidebarIdx   int
	focusSidebar bool
	cursor       int

	previews *render.Cache

	input       textinput.Model
	mode        inputMode
	inputTarget string

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel builds the browser over an opened application state.
func NewModel(app *state.State) *Model {
	searchBox := textinput.New()
	searchBox.Placeholder = "search everything"
	searchBox.Prompt = "/ "
	searchBox.CharLimit = 120

	input := textinput.New()
	input.CharLimit = 60

	sizes := app.Config.PageSizes
	pagers := map[filter.Tab]*pagination.View{
		filter.TabNotes:      pagination.NewView(sizes.Notes),
		filter.TabBooks:      pagination.NewView(sizes.Catalog),
		filter.TabArticles:   pagination.NewView(sizes.Catalog),
		filter.TabWebsites:   pagination.NewView(sizes.Catalog),
		filter.TabHighlights: pagination.NewView(sizes.Highlights),
	}

	engine := filter.NewEngine(app.Config.Locale)
	engine.SetLimits(app.Config.RecentLimit, app.Config.TopTags)

	m := &Model{
		app:       app,
		keys:      newKeyMap(),
		styles:    defaultStyles(),
		engine:    engine,
		filters:   filter.NewState(),
		debouncer: debounce.New(app.Config.Debounce()),
		searchBox: searchBox,
		input:     input,
		pagers:    pagers,
		reveals:   make(map[models.Category]*pagination.Reveal),
		previews:  render.NewCache(64),
	}

	m.coord = move.NewCoordinator(
		app.Store,
		func(id string) (models.Folder, bool) { return m.idx.Folder(id) },
		m.noteLocation,
	)
	m.coord.SetUndoWindow(app.Config.UndoWindow())

	m.recompute(false)
	return m
}

// Init starts the library file watcher.
func (m *Model) Init() tea.Cmd {
	if m.app.Watcher == nil {
		return nil
	}
	return m.app.Watcher.Start()
}

func (m *Model) pager() *pagination.View {
	return m.pagers[m.filters.Tab]
}

func (m *Model) noteLocation(id string) (move.Location, bool) {
	for _, n := range m.app.Store.Notes() {
		if n.ID == id {
			return move.Location{Category: n.Category, FolderID: m.idx.Resolve(n)}, true
		}
	}
	return move.Location{}, false
}

// recompute rebuilds every derived collection from the store and the
// criteria. criteriaChanged additionally resets pagination to page one;
// plain data refreshes keep the page and clamp.
func (m *Model) recompute(criteriaChanged bool) {
	m.idx = folders.NewIndex(m.app.Store.Folders())

	allNotes := m.app.Store.Notes()
	m.counts = m.idx.CountNotes(allNotes)
	m.tags = m.engine.TopTags(allNotes)
	m.smart = m.engine.CountSmart(allNotes)

	st := m.filters
	st.Query = m.debouncer.Committed()

	total := 0
	if _, catalog := st.Tab.ItemKind(); catalog {
		m.items = m.engine.Items(m.app.Store.Items(), st)
		m.notes = nil
		m.highlights = nil
		total = len(m.items)
	} else {
		m.notes = m.engine.Notes(allNotes, m.idx, st)
		m.items = nil
		m.highlights = nil
		total = len(m.notes)
		if st.Tab == filter.TabHighlights {
			m.highlights = flattenHighlights(m.notes)
			total = len(m.highlights)
		}
	}

	m.pager().Apply(total, criteriaChanged)
	m.rows = m.buildRows()
	m.clampSidebar()
	m.clampCursor()
}

func flattenHighlights(notes []models.Note) []highlightRow {
	var out []highlightRow
	for _, n := range notes {
		for _, h := range n.Highlights {
			out = append(out, highlightRow{
				NoteID:    n.ID,
				NoteTitle: n.Title,
				Text:      h.Text,
				Source:    h.Source,
			})
		}
	}
	return out
}

// pageBounds returns the slice of the current result set on the
// visible page.
func (m *Model) pageBounds() (start, end int) {
	return m.pager().Slice()
}

func (m *Model) resultCount() int {
	switch {
	case m.items != nil:
		return len(m.items)
	case m.filters.Tab == filter.TabHighlights:
		return len(m.highlights)
	default:
		return len(m.notes)
	}
}

func (m *Model) pageLen() int {
	start, end := m.pageBounds()
	return end - start
}

func (m *Model) clampCursor() {
	n := m.pageLen()
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedNote returns the note under the cursor on the notes tab.
func (m *Model) selectedNote() (models.Note, bool) {
	if m.filters.Tab != filter.TabNotes {
		return models.Note{}, false
	}
	start, _ := m.pageBounds()
	i := start + m.cursor
	if i < 0 || i >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[i], true
}

// Update is the event loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case debounce.CommitMsg:
		if m.debouncer.Commit(msg) {
			m.recompute(true)
		}
		return m, nil

	case store.LibraryChangedMsg:
		if err := m.app.Store.Reload(); err != nil {
			m.setError(fmt.Errorf("reload library: %w", err))
		} else {
			m.recompute(false)
		}
		return m, m.Init()

	case store.WatcherErrMsg:
		m.setError(msg.Err)
		return m, m.Init()

	case move.NoteMovedMsg:
		cmd := m.coord.ScheduleUndo(msg)
		m.recompute(false)
		m.setStatus(fmt.Sprintf("Moved to %s. Press u to undo.", m.describeLocation(msg.To)))
		return m, cmd

	case move.FolderMovedMsg:
		if m.filters.Folder == msg.FolderID {
			// Keep the moved folder's contents on screen: the active
			// filter follows it into the destination category.
			m.filters.Category = msg.To
			m.recompute(true)
		} else {
			m.recompute(false)
		}
		m.setStatus(fmt.Sprintf("Folder moved to %s.", msg.To.Label()))
		return m, nil

	case move.UndoneMsg:
		m.recompute(false)
		m.setStatus(fmt.Sprintf("Move undone, back in %s.", m.describeLocation(msg.RestoredTo)))
		return m, nil

	case move.ErrorMsg:
		m.setError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		m.coord.Expire(msg)
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeNewFolder, modeRenameFolder:
		return m.handleInputKey(msg)
	case modeConfirmDeleteFolder, modeConfirmDeleteNote:
		return m.handleConfirmKey(msg)
	}

	if m.coord.Drag().Kind != move.DragNone {
		return m.handleDragKey(msg)
	}

	return m.handleBrowseKey(msg)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.search):
		m.mode = modeSearch
		m.searchBox.SetValue(m.debouncer.Echo())
		m.searchBox.CursorEnd()
		return m, m.searchBox.Focus()

	case key.Matches(msg, keys.nextTab):
		m.setTab(nextTab(m.filters.Tab, 1))
		return m, nil

	case key.Matches(msg, keys.prevTab):
		m.setTab(nextTab(m.filters.Tab, -1))
		return m, nil

	case key.Matches(msg, keys.cycleCategory):
		m.filters.Category = nextCategory(m.filters.Category)
		m.filters.Folder = filter.FolderAll
		m.recompute(true)
		return m, nil

	case key.Matches(msg, keys.focusSidebar):
		m.focusSidebar = !m.focusSidebar
		return m, nil

	case key.Matches(msg, keys.up):
		if m.focusSidebar {
			m.sidebarIdx--
			m.clampSidebar()
		} else {
			m.cursor--
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, keys.down):
		if m.focusSidebar {
			m.sidebarIdx++
			m.clampSidebar()
		} else {
			m.cursor++
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, keys.selectRow):
		if m.focusSidebar {
			m.selectSidebarRow()
		}
		return m, nil

	case key.Matches(msg, keys.nextPage):
		m.pager().Next()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.prevPage):
		m.pager().Prev()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.smartFavorites):
		m.toggleSmart(filter.SmartFavorites)
		return m, nil

	case key.Matches(msg, keys.smartRecent):
		m.toggleSmart(filter.SmartRecent)
		return m, nil

	case key.Matches(msg, keys.cycleTag):
		m.cycleTagFilter()
		return m, nil

	case key.Matches(msg, keys.clearFilters):
		m.filters = filter.State{Tab: m.filters.Tab, Category: filter.CategoryAll, Folder: filter.FolderAll, Sort: m.filters.Sort}
		m.debouncer.Clear()
		m.recompute(true)
		return m, nil

	case key.Matches(msg, keys.cycleSort):
		m.filters.Sort = nextSort(m.filters.Sort)
		m.recompute(true)
		return m, nil

	case key.Matches(msg, keys.cycleStatus):
		if _, catalog := m.filters.Tab.ItemKind(); catalog {
			m.filters.Status = nextStatus(m.filters.Status)
			m.recompute(true)
		}
		return m, nil

	case key.Matches(msg, keys.cyclePublisher):
		m.cyclePublisherFilter()
		return m, nil

	case key.Matches(msg, keys.grabNote):
		m.grabNote()
		return m, nil

	case key.Matches(msg, keys.grabFolder):
		m.grabFolder()
		return m, nil

	case key.Matches(msg, keys.undo):
		cmd := m.coord.Undo()
		if cmd == nil {
			m.setStatus("Nothing to undo.")
		}
		return m, cmd

	case key.Matches(msg, keys.favorite):
		if n, ok := m.selectedNote(); ok {
			if err := m.app.Store.ToggleFavorite(n.ID); err != nil {
				m.setError(err)
			} else {
				m.recompute(false)
			}
		}
		return m, nil

	case key.Matches(msg, keys.deleteNote):
		if n, ok := m.selectedNote(); ok {
			m.mode = modeConfirmDeleteNote
			m.inputTarget = n.ID
			m.setStatus(fmt.Sprintf("Delete %q? y/n", n.Title))
		}
		return m, nil

	case key.Matches(msg, keys.newFolder):
		m.mode = modeNewFolder
		m.input.Placeholder = "folder name"
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, keys.renameFolder):
		if row, ok := m.selectedRow(); ok && row.kind == rowFolder {
			m.mode = modeRenameFolder
			m.inputTarget = row.folder.ID
			m.input.Placeholder = "new name"
			m.input.SetValue(row.folder.Name)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.deleteFolder):
		if row, ok := m.selectedRow(); ok && row.kind == rowFolder {
			m.mode = modeConfirmDeleteFolder
			m.inputTarget = row.folder.ID
			m.setStatus(fmt.Sprintf("Delete folder %q? Notes fall back to the category root. y/n", row.folder.Name))
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.mode = modeNone
		m.searchBox.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		m.mode = modeNone
		m.searchBox.Blur()
		if m.debouncer.Committed() != m.searchBox.Value() {
			m.debouncer.Set(m.searchBox.Value())
			m.recompute(true)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchBox, cmd = m.searchBox.Update(msg)

	// Every edit restarts the trailing debounce window; the commit
	// arrives later as a CommitMsg.
	typeCmd := m.debouncer.Type(m.searchBox.Value())
	return m, tea.Batch(cmd, typeCmd)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.mode = modeNone
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		mode := m.mode
		m.mode = modeNone
		m.input.Blur()
		name := m.input.Value()

		switch mode {
		case modeNewFolder:
			c := m.filters.Category
			if c == filter.CategoryAll {
				c = models.CategoryDaily
			}
			if f, err := m.app.Store.CreateFolder(c, name); err != nil {
				m.setError(err)
			} else {
				m.setStatus(fmt.Sprintf("Created folder %q in %s.", f.Name, c.Label()))
				m.recompute(false)
			}

		case modeRenameFolder:
			if err := m.app.Store.RenameFolder(m.inputTarget, name); err != nil {
				m.setError(err)
			} else {
				m.setStatus("Folder renamed.")
				m.recompute(false)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode
	m.mode = modeNone

	if msg.String() != "y" {
		m.setStatus("Cancelled.")
		return m, nil
	}

	switch mode {
	case modeConfirmDeleteFolder:
		if err := m.app.Store.DeleteFolder(m.inputTarget); err != nil {
			m.setError(err)
		} else {
			if m.filters.Folder == m.inputTarget {
				m.filters.Folder = filter.FolderAll
			}
			m.setStatus("Folder deleted, notes moved to the category root.")
			m.recompute(true)
		}

	case modeConfirmDeleteNote:
		if err := m.app.Store.DeleteNote(m.inputTarget); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Note deleted.")
			m.recompute(false)
		}
	}
	return m, nil
}

// handleDragKey navigates drop targets while a drag session is live.
func (m *Model) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.cancel), key.Matches(msg, keys.quit):
		m.coord.Cancel()
		m.setStatus("Move cancelled.")
		return m, nil

	case key.Matches(msg, keys.up):
		m.moveHover(-1)
		return m, nil

	case key.Matches(msg, keys.down):
		m.moveHover(1)
		return m, nil

	case key.Matches(msg, keys.drop):
		target := m.coord.Hovered()
		cmd, err := m.coord.Drop(target)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if cmd == nil {
			m.setStatus("Already there.")
			return m, nil
		}
		return m, cmd
	}
	return m, nil
}

// moveHover walks the hover to the next drop-target row in the given
// direction, skipping rows that cannot receive a drop.
func (m *Model) moveHover(dir int) {
	current := -1
	for i, row := range m.rows {
		if row.targetID() != "" && row.targetID() == m.coord.Hovered() {
			current = i
			break
		}
	}

	for i := current + dir; i >= 0 && i < len(m.rows); i += dir {
		if id := m.rows[i].targetID(); id != "" && m.allowedTarget(m.rows[i]) {
			m.coord.Hover(id)
			return
		}
	}
}

// allowedTarget filters drop rows by payload kind: folders only land on
// category groups, notes land anywhere.
func (m *Model) allowedTarget(row sidebarRow) bool {
	if m.coord.Drag().Kind == move.DragFolder {
		return row.kind == rowCategory
	}
	return true
}

func (m *Model) grabNote() {
	n, ok := m.selectedNote()
	if !ok {
		m.setStatus("No note selected.")
		return
	}
	if err := m.coord.StartDrag(move.NotePayloadID(n.ID)); err != nil {
		m.setError(err)
		return
	}
	m.seedHover()
	m.setStatus(fmt.Sprintf("Moving %q. Pick a destination, enter drops, esc cancels.", n.Title))
}

func (m *Model) grabFolder() {
	row, ok := m.selectedRow()
	if !ok || row.kind != rowFolder {
		m.setStatus("Select a folder in the sidebar first.")
		return
	}
	if err := m.coord.StartDrag(move.FolderPayloadID(row.folder.ID)); err != nil {
		m.setError(err)
		return
	}
	m.seedHover()
	m.setStatus(fmt.Sprintf("Moving folder %q to another category.", row.folder.Name))
}

func (m *Model) seedHover() {
	for _, row := range m.rows {
		if id := row.targetID(); id != "" && m.allowedTarget(row) {
			m.coord.Hover(id)
			return
		}
	}
}

func (m *Model) selectSidebarRow() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}

	switch row.kind {
	case rowAll:
		m.filters.Category = filter.CategoryAll
		m.filters.Folder = filter.FolderAll
	case rowCategory:
		m.filters.Category = row.category
		m.filters.Folder = filter.FolderAll
	case rowRoot:
		m.filters.Category = row.category
		m.filters.Folder = filter.FolderRoot
	case rowFolder:
		m.filters.Category = row.category
		m.filters.Folder = row.folder.ID
	case rowMore:
		m.revealFor(row.category).More()
		m.rows = m.buildRows()
		return
	}
	m.recompute(true)
}

func (m *Model) toggleSmart(s filter.Smart) {
	if m.filters.Smart == s {
		m.filters.Smart = filter.SmartNone
	} else {
		m.filters.Smart = s
	}
	m.recompute(true)
}

// cycleTagFilter steps the tag constraint through the top tags, then
// back to none.
func (m *Model) cycleTagFilter() {
	if len(m.tags) == 0 {
		return
	}

	next := ""
	if m.filters.Tag == "" {
		next = m.tags[0].Key
	} else {
		for i, tc := range m.tags {
			if tc.Key == m.filters.Tag && i+1 < len(m.tags) {
				next = m.tags[i+1].Key
				break
			}
		}
	}

	m.filters.Tag = next
	m.recompute(true)
}

func (m *Model) cyclePublisherFilter() {
	kind, catalog := m.filters.Tab.ItemKind()
	if !catalog {
		return
	}

	publishers := m.engine.Publishers(m.app.Store.Items(), kind)
	if len(publishers) == 0 {
		return
	}

	next := ""
	if m.filters.Publisher == "" {
		next = publishers[0]
	} else {
		for i, p := range publishers {
			if p == m.filters.Publisher && i+1 < len(publishers) {
				next = publishers[i+1]
				break
			}
		}
	}

	m.filters.Publisher = next
	m.recompute(true)
}

func (m *Model) setTab(t filter.Tab) {
	m.filters.Tab = t
	m.filters.Status = ""
	m.filters.Publisher = ""
	m.cursor = 0
	// Switching tabs clears the committed query; the echo follows it.
	m.debouncer.Clear()
	m.searchBox.SetValue("")
	m.recompute(true)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, folders.ErrEmptyName) || errors.Is(err, folders.ErrDuplicateName) {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("Error: %v", err)
	}
	m.statusErr = true
}

func (m *Model) describeLocation(loc move.Location) string {
	if loc.FolderID == "" {
		return loc.Category.Label()
	}
	if f, ok := m.idx.Folder(loc.FolderID); ok {
		return fmt.Sprintf("%s / %s", loc.Category.Label(), f.Name)
	}
	return loc.Category.Label()
}

func nextTab(t filter.Tab, dir int) filter.Tab {
	order := []filter.Tab{
		filter.TabNotes,
		filter.TabBooks,
		filter.TabArticles,
		filter.TabWebsites,
		filter.TabHighlights,
	}
	for i, cur := range order {
		if cur == t {
			return order[(i+dir+len(order))%len(order)]
		}
	}
	return filter.TabNotes
}

func nextCategory(c models.Category) models.Category {
	switch c {
	case filter.CategoryAll:
		return models.CategoryDaily
	case models.CategoryDaily:
		return models.CategoryIdeas
	case models.CategoryIdeas:
		return models.CategoryPrivate
	default:
		return filter.CategoryAll
	}
}

func nextSort(s filter.Sort) filter.Sort {
	switch s {
	case filter.SortNewest:
		return filter.SortOldest
	case filter.SortOldest:
		return filter.SortTitle
	default:
		return filter.SortNewest
	}
}

func nextStatus(s models.ReadingStatus) models.ReadingStatus {
	switch s {
	case "":
		return models.StatusUnread
	case models.StatusUnread:
		return models.StatusReading
	case models.StatusReading:
		return models.StatusFinished
	default:
		return ""
	}
}
