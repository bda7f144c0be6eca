package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stacks/internal/state"
	"stacks/pkg/cmd/browse"
	"stacks/pkg/cmd/capture"
	"stacks/pkg/cmd/find"
	"stacks/pkg/cmd/folder"
	"stacks/pkg/cmd/initialize"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var library string

	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "Organize notes, reading and highlights from the terminal.",
		Long: `A personal library for notes, books, articles, websites and highlights.
Notes live in categories (Daily, Ideas, Private) and folders inside them;
everything is searchable, filterable and movable without leaving the keyboard.

  stacks            open the interactive library
  stacks capture    jot down a note from anywhere
  stacks find       fuzzy-pick a note and print it
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if library == "" {
				return nil
			}
			return s.UseLibrary(library)
		},
		RunE: browse.NewCmdBrowse(s).RunE,
	}

	cmd.PersistentFlags().StringVar(
		&library,
		"library",
		"",
		"Library file to use instead of the configured one.",
	)
	viper.BindPFlag("library", cmd.PersistentFlags().Lookup("library"))

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		browse.NewCmdBrowse(s),
		capture.NewCmdCapture(s),
		find.NewCmdFind(s),
		folder.NewCmdFolder(s),
	)

	return cmd, nil
}
