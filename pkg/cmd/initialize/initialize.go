package initialize

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"stacks/internal/state"
	"stacks/internal/store"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"initialize"},
		Short:   "Create the configuration and an empty library",
		Long: heredoc.Doc(`
			Init writes the default configuration under ~/.stacks and
			creates the library file it points at, if either is missing.
			Existing files are left untouched.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s)
		},
	}
	return cmd
}

func run(s *state.State) error {
	if err := s.Config.Save(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := store.Init(s.Config.Library); err != nil {
		return fmt.Errorf("create library: %w", err)
	}

	fmt.Println("Library ready at", s.Config.Library)
	return nil
}
