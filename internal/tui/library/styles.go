package library

import "github.com/charmbracelet/lipgloss"

type styles struct {
	sidebar       lipgloss.Style
	sidebarHeader lipgloss.Style
	sidebarRow    lipgloss.Style
	sidebarActive lipgloss.Style
	sidebarHover  lipgloss.Style
	sidebarDim    lipgloss.Style
	main          lipgloss.Style
	preview       lipgloss.Style
	tabBar        lipgloss.Style
	tab           lipgloss.Style
	tabActive     lipgloss.Style
	title         lipgloss.Style
	titleSelected lipgloss.Style
	meta          lipgloss.Style
	tag           lipgloss.Style
	empty         lipgloss.Style
	pager         lipgloss.Style
	pagerCurrent  lipgloss.Style
	status        lipgloss.Style
	statusError   lipgloss.Style
	dragBanner    lipgloss.Style
	prompt        lipgloss.Style
}

func defaultStyles() *styles {
	return &styles{
		sidebar: lipgloss.NewStyle().
			Width(28).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#373B54")),
		sidebarHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F2D202")),
		sidebarRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D3D3D3")),
		sidebarActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2EF8A0")),
		sidebarHover: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color("#F25D94")),
		sidebarDim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),
		main: lipgloss.NewStyle().
			Padding(0, 2),
		preview: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#373B54")),
		tabBar: lipgloss.NewStyle().
			Padding(0, 1),
		tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#777777")),
		tabActive: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#F2D202")).
			Underline(true),
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D3D3D3")),
		titleSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2EF8A0")),
		meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),
		tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8386F5")),
		empty: lipgloss.NewStyle().
			Padding(2, 4).
			Foreground(lipgloss.Color("#777777")).
			Italic(true),
		pager: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")),
		pagerCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F2D202")),
		status: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#D3D3D3")),
		statusError: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#F25D94")),
		dragBanner: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color("#F2D202")),
		prompt: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#F2D202")),
	}
}
