package browse

import (
	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stacks/internal/state"
	"stacks/internal/tui/library"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b"},
		Short:   "Browse the library interactively",
		Long: heredoc.Doc(`
			Browse opens the interactive library: notes, books, articles,
			websites and highlights in tabs, with the category and folder
			sidebar, debounced search, and keyboard-driven moves.

			Examples:
			  stacks browse
			  stacks b
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s)
		},
	}
	return cmd
}

func run(s *state.State) error {
	program := tea.NewProgram(library.NewModel(s), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
