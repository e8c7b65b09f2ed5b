/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/

// ls.go implements the "papertrack ls" command for listing stored papers.

package cmd

import (
	"fmt"

	"github.com/qiwen-lab/papertrack/internal/format"
	"github.com/qiwen-lab/papertrack/internal/log"
	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List stored papers",
		Long:  `List papers in the database, ordered by category then submission time.`,
		RunE:  runLs,
	}
	c.Flags().BoolP("long", "l", false, "Long format with category, status, and submission date")
	c.Flags().String("category", "", "List only this category")
	c.Flags().String("status", "", "List only this status")
	return c
}

func runLs(c *cobra.Command, _ []string) error {
	long, _ := c.Flags().GetBool("long")
	category, _ := c.Flags().GetString("category")
	status, _ := c.Flags().GetString("status")

	records, err := appStore.List(c.Context(), store.ListOptions{
		Category: category,
		Status:   status,
	})

	log.Event("paper:ls", "list").
		Author(Author()).
		Count(len(records)).
		Detail("category", category).
		Detail("status", status).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if JSON() {
		type item struct {
			UID      string `json:"uid"`
			DOI      string `json:"doi"`
			Title    string `json:"title"`
			Category string `json:"category"`
			Status   string `json:"status"`
		}
		items := make([]item, 0, len(records))
		for _, r := range records {
			items = append(items, item{
				UID:      r.UID,
				DOI:      r.Paper.DOI,
				Title:    r.Paper.Title,
				Category: r.Paper.Category,
				Status:   r.Paper.Status,
			})
		}
		return PrintJSON(items)
	}

	if long {
		return format.Long(Out(), records)
	}
	return format.List(Out(), records)
}

func init() {
	rootCmd.AddCommand(newLsCmd())
}
