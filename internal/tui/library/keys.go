package library

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit            key.Binding
	up              key.Binding
	down            key.Binding
	nextPage        key.Binding
	prevPage        key.Binding
	nextTab         key.Binding
	prevTab         key.Binding
	cycleCategory   key.Binding
	focusSidebar    key.Binding
	selectRow       key.Binding
	smartFavorites  key.Binding
	smartRecent     key.Binding
	cycleTag        key.Binding
	clearFilters    key.Binding
	search          key.Binding
	cycleSort       key.Binding
	cycleStatus     key.Binding
	cyclePublisher  key.Binding
	grabNote        key.Binding
	grabFolder      key.Binding
	drop            key.Binding
	undo            key.Binding
	favorite        key.Binding
	deleteNote      key.Binding
	newFolder       key.Binding
	renameFolder    key.Binding
	deleteFolder    key.Binding
	submit          key.Binding
	cancel          key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		cycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		focusSidebar: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "folders"),
		),
		selectRow: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		smartFavorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites"),
		),
		smartRecent: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "recent"),
		),
		cycleTag: key.NewBinding(
			key.WithKeys("#"),
			key.WithHelp("#", "tag filter"),
		),
		clearFilters: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filters"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		cycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		cycleStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "status"),
		),
		cyclePublisher: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "publisher"),
		),
		grabNote: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move note"),
		),
		grabFolder: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "move folder"),
		),
		drop: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "drop"),
		),
		undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo move"),
		),
		favorite: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "favorite"),
		),
		deleteNote: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete note"),
		),
		newFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new folder"),
		),
		renameFolder: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename folder"),
		),
		deleteFolder: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete folder"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
