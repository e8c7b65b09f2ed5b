/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// show.go implements the "papertrack show" command for displaying one paper.
//
// Design: Terminal output gets glamour markdown rendering; pipe/redirect
// gets raw markdown so the output stays scriptable.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qiwen-lab/papertrack/internal/format"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/store"
)

func newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <uid|doi|title>",
		Short: "Show one paper",
		Long: `Display a single paper record as markdown. The argument is a paper uid,
a DOI, or a title (case-insensitive).`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	c.Flags().Bool("raw", false, "Output raw markdown without rendering")
	return c
}

func runShow(c *cobra.Command, args []string) error {
	key := args[0]
	raw, _ := c.Flags().GetBool("raw")

	rec, err := resolvePaper(c, key)

	b := log.Event("paper:show", "show").Author(Author())
	if rec != nil {
		b = b.Paper(rec.UID)
	}
	b.Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("show %q: %w", key, err))
	}

	if JSON() {
		fields := make(map[string]string)
		for _, t := range appTags.ActiveTags() {
			fields[t.Variable] = rec.Paper.Field(t.Variable)
		}
		return PrintJSON(map[string]any{"uid": rec.UID, "paper": fields})
	}

	md := format.Markdown(&rec.Paper, appTags)

	// Render with glamour if TTY and not --raw
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := glamour.Render(md, "dark"); renderErr == nil {
			fmt.Fprint(Out(), rendered)
			return nil
		}
	}
	fmt.Fprint(Out(), md)
	return nil
}

// resolvePaper finds a record by uid first, then by DOI or title match.
func resolvePaper(c *cobra.Command, key string) (*store.Record, error) {
	rec, err := appStore.Get(c.Context(), key)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	records, err := appStore.List(c.Context(), store.ListOptions{})
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(key))
	for i := range records {
		p := &records[i].Paper
		if strings.ToLower(p.DOI) == needle || strings.ToLower(strings.TrimSpace(p.Title)) == needle {
			return &records[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func init() {
	rootCmd.AddCommand(newShowCmd())
}
