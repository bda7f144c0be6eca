package folder

import (
	"fmt"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"stacks/internal/folders"
	"stacks/internal/models"
	"stacks/internal/state"
)

func NewCmdFolder(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folder",
		Aliases: []string{"folders"},
		Short:   "Manage folders",
		Long: heredoc.Doc(`
			Folder lists and manages the folders notes are organized into.
			Folder names are unique within a category, compared without
			case or surrounding whitespace.

			Examples:
			  stacks folder list
			  stacks folder add ideas Sketches
			  stacks folder rename ideas Sketches Drafts
			  stacks folder rm ideas Drafts
			  stacks folder mv ideas Sketches daily
		`),
	}

	cmd.AddCommand(
		newCmdList(s),
		newCmdAdd(s),
		newCmdRename(s),
		newCmdRemove(s),
		newCmdMove(s),
	)
	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders with their note counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := folders.NewIndex(s.Store.Folders())
			counts := idx.CountNotes(s.Store.Notes())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range models.Categories {
				fmt.Fprintf(w, "%s\t%d notes\n", c.Label(), counts.Category[c])
				fmt.Fprintf(w, "  (unfiled)\t%d\n", counts.Root[c])
				for _, f := range idx.ForCategory(c) {
					fmt.Fprintf(w, "  %s\t%d\n", f.Name, counts.ByFolder[f.ID])
				}
			}
			return w.Flush()
		},
	}
}

func newCmdAdd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <name>",
		Short: "Create a folder in a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := models.ParseCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}

			f, err := s.Store.CreateFolder(c, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Created %q in %s.\n", f.Name, c.Label())
			return nil
		},
	}
}

func newCmdRename(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category> <name> <new-name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookup(s, args[0], args[1])
			if err != nil {
				return err
			}

			if err := s.Store.RenameFolder(f.ID, args[2]); err != nil {
				return err
			}
			fmt.Printf("Renamed %q to %q.\n", f.Name, args[2])
			return nil
		},
	}
}

func newCmdRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <category> <name>",
		Short: "Delete a folder, moving its notes to the category root",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookup(s, args[0], args[1])
			if err != nil {
				return err
			}

			if err := s.Store.DeleteFolder(f.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %q. Its notes are back at the %s root.\n", f.Name, f.Category.Label())
			return nil
		},
	}
}

func newCmdMove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <category> <name> <destination-category>",
		Short: "Move a folder and its notes to another category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookup(s, args[0], args[1])
			if err != nil {
				return err
			}

			dest, ok := models.ParseCategory(args[2])
			if !ok {
				return fmt.Errorf("unknown category %q", args[2])
			}

			if err := s.Store.MoveFolderCategory(f.ID, dest); err != nil {
				return err
			}
			fmt.Printf("Moved %q to %s.\n", f.Name, dest.Label())
			return nil
		},
	}
}

// lookup finds a folder by category and name using the same name
// normalization the note resolver applies.
func lookup(s *state.State, category, name string) (models.Folder, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return models.Folder{}, fmt.Errorf("unknown category %q", category)
	}

	idx := folders.NewIndex(s.Store.Folders())
	probe := models.Note{Category: c, FolderPath: name}
	if id := idx.Resolve(probe); id != "" {
		if f, ok := idx.Folder(id); ok {
			return f, nil
		}
	}
	return models.Folder{}, fmt.Errorf("no folder %q in %s", name, c.Label())
}
