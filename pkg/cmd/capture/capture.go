package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"stacks/internal/folders"
	"stacks/internal/models"
	"stacks/internal/state"
)

var readClipboard = clipboard.ReadAll

// NewCmdCapture constructs the quick-capture command.
func NewCmdCapture(s *state.State) *cobra.Command {
	var (
		tags     []string
		category string
		folder   string
		created  string
		paste    bool
	)

	cmd := &cobra.Command{
		Use:     "capture [title]",
		Aliases: []string{"c"},
		Short:   "Capture a note into the library",
		Long: heredoc.Doc(`
			Capture creates a note from the command line. The title comes
			from the arguments; the body comes from stdin when piped, or
			from the clipboard with --paste.

			The folder flag takes a folder name inside the target category.
			A name that matches no folder yet is kept as free text and
			resolves once a folder with that name exists.

			Examples:
			  stacks capture "Morning pages" --category daily
			  pbpaste | stacks capture "Reading notes" --tags books,stoicism
			  stacks capture "Clip" --paste --category ideas --folder Sketches
			  stacks capture "Imported" --created "May 8, 2019"
		`),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args, tags, category, folder, created, paste)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Tags for the note")
	cmd.Flags().StringVarP(&category, "category", "c", string(models.CategoryDaily), "Category: daily, ideas or private")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder name inside the category")
	cmd.Flags().StringVar(&created, "created", "", "Creation timestamp, any common format")
	cmd.Flags().BoolVar(&paste, "paste", false, "Use the clipboard as the note body")

	return cmd
}

func run(s *state.State, args, tags []string, category, folder, created string, paste bool) error {
	c, ok := models.ParseCategory(category)
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}

	body, err := readBody(paste)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		title = firstLine(body)
	}
	if title == "" && body == "" {
		return errors.New("nothing to capture: give a title, pipe a body, or use --paste")
	}

	n := models.Note{
		Title:    title,
		Body:     body,
		Category: c,
		Tags:     tags,
	}

	if folder != "" {
		idx := folders.NewIndex(s.Store.Folders())
		probe := models.Note{Category: c, FolderPath: folder}
		if id := idx.Resolve(probe); id != "" {
			n.FolderID = id
		} else {
			n.FolderPath = folder
		}
	}

	if created != "" {
		t, err := dateparse.ParseAny(created)
		if err != nil {
			return fmt.Errorf("parse --created %q: %w", created, err)
		}
		n.CreatedAt = t
	} else {
		n.CreatedAt = time.Now()
	}

	saved, err := s.Store.CreateNote(n)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	fmt.Printf("Captured %q into %s.\n", saved.Title, c.Label())
	return nil
}

func readBody(paste bool) (string, error) {
	if paste {
		body, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return body, nil
	}

	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func firstLine(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	if len(line) > 60 {
		line = line[:60]
	}
	return strings.TrimSpace(line)
}
