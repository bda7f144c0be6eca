package find

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"stacks/internal/models"
	"stacks/internal/render"
	"stacks/internal/state"
)

func NewCmdFind(s *state.State) *cobra.Command {
	var (
		query       string
		withPrivate bool
	)

	cmd := &cobra.Command{
		Use:     "find",
		Aliases: []string{"f"},
		Short:   "Fuzzy-pick a note and print it",
		Long: heredoc.Doc(`
			Find opens a fuzzy picker over note titles and tags, with a
			rendered preview, and prints the chosen note. Private notes
			stay hidden unless --private is given.

			Examples:
			  stacks find
			  stacks find -q stoic
			  stacks find --private
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, query, withPrivate)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial picker query")
	cmd.Flags().BoolVar(&withPrivate, "private", false, "Include private notes")

	return cmd
}

func run(s *state.State, query string, withPrivate bool) error {
	var notes []models.Note
	for _, n := range s.Store.Notes() {
		if n.Category == models.CategoryPrivate && !withPrivate {
			continue
		}
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return errors.New("no notes to search")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			return render.Markdown(notes[i].Body, w/2-4)
		}),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	idx, err := fuzzyfinder.Find(
		notes,
		func(i int) string {
			n := notes[i]
			if len(n.Tags) == 0 {
				return n.Title
			}
			return fmt.Sprintf("%s [%s]", n.Title, strings.Join(n.TagKeys(), ", "))
		},
		options...,
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil
		}
		return err
	}

	n := notes[idx]
	fmt.Printf("# %s\n\n", n.Title)
	fmt.Println(render.Markdown(n.Body, 80))
	return nil
}
