// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and markdown rendering.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/store"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// List prints papers in simple list format: uid, doi, title.
func List(w io.Writer, records []store.Record) error {
	for _, r := range records {
		doi := r.Paper.DOI
		if doi == "" {
			doi = "-"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", r.UID, doi, r.Paper.Title)
	}
	return nil
}

// Long prints papers in long format with uid, category, status, submission
// date, and title.
//
// Fixed-width columns come first so they align properly. TITLE is placed at
// the end where its varying width does not disrupt the alignment of other
// columns.
func Long(w io.Writer, records []store.Record) error {
	if len(records) == 0 {
		return nil
	}

	maxCat := 8 // minimum "CATEGORY"
	for _, r := range records {
		if len(r.Paper.Category) > maxCat {
			maxCat = len(r.Paper.Category)
		}
	}

	fmt.Fprintf(w, "%-16s  %-*s  %-8s  %-10s  %s\n", "UID", maxCat, "CATEGORY", "STATUS", "SUBMITTED", "TITLE")

	for _, r := range records {
		cat := r.Paper.Category
		if cat == "" {
			cat = "-"
		}
		status := r.Paper.Status
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%s  %-*s  %-8s  %-10s  %s%s\n",
			r.UID, maxCat, cat, status, submittedDate(&r.Paper), r.Paper.Title, conflictSuffix(&r.Paper))
	}
	return nil
}

// submittedDate renders the submission timestamp as a date, or "-".
func submittedDate(p *paper.Paper) string {
	ts, err := time.Parse(time.RFC3339, p.SubmissionTime)
	if err != nil {
		return "-"
	}
	return ts.Format("2006-01-02")
}

func conflictSuffix(p *paper.Paper) string {
	if p.ConflictMarker {
		return " [conflict]"
	}
	return ""
}

// Markdown renders one paper as a markdown document for the show command.
// Sections follow the tag configuration order; empty attributes are omitted.
func Markdown(p *paper.Paper, cfg *tagcfg.Config) string {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if p.ConflictMarker {
		b.WriteString("> **Conflict**: this record clashed with an existing entry.\n\n")
	}

	for _, t := range cfg.ActiveTags() {
		if t.Variable == "title" {
			continue
		}
		value := strings.TrimSpace(p.Field(t.Variable))
		if value == "" {
			continue
		}

		switch {
		case paper.ArrayFields[t.Variable]:
			fmt.Fprintf(&b, "**%s**:\n\n", t.Display())
			for _, item := range validate.SplitFields(value) {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			b.WriteString("\n")
		case strings.HasPrefix(t.Variable, "summary_") || t.Variable == "abstract" || t.Variable == "notes":
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", t.Display(), value)
		default:
			fmt.Fprintf(&b, "**%s**: %s\n\n", t.Display(), value)
		}
	}

	return b.String()
}

// Readme renders the whole collection as a markdown reading list: one
// table per category, in category order, listing every paper whose
// show_in_readme flag is set. Returns the document and the number of papers
// it lists. Papers whose category matches nothing configured are gathered
// under a trailing section.
func Readme(records []store.Record, cfg *tagcfg.Config) (string, int) {
	byCategory := make(map[string][]*paper.Paper)
	var stray []*paper.Paper
	shown := 0

	known := make(map[string]bool)
	for _, name := range cfg.CategoryNames() {
		known[name] = true
	}

	for i := range records {
		p := &records[i].Paper
		if !p.ShowInReadme {
			continue
		}
		shown++

		placed := false
		for _, cat := range validate.SplitFields(p.Category) {
			if known[cat] {
				byCategory[cat] = append(byCategory[cat], p)
				placed = true
			}
		}
		if !placed {
			stray = append(stray, p)
		}
	}

	var b strings.Builder
	b.WriteString("# Papers\n")

	for _, cat := range cfg.ActiveCategories() {
		papers := byCategory[cat.UniqueName]
		if len(papers) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", cat.Name)
		readmeTable(&b, papers)
	}
	if len(stray) > 0 {
		b.WriteString("\n## Uncategorised\n\n")
		readmeTable(&b, stray)
	}

	return b.String(), shown
}

func readmeTable(b *strings.Builder, papers []*paper.Paper) {
	b.WriteString("| Title | Authors | Date | DOI |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, p := range papers {
		title := tableCell(p.Title)
		if p.PaperURL != "" {
			title = fmt.Sprintf("[%s](%s)", title, p.PaperURL)
		}
		title += conflictSuffix(p)
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			title, tableCell(p.Authors), tableCell(p.Date), tableCell(p.DOI))
	}
}

// tableCell escapes the markdown table delimiter inside a cell value.
func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ValidationReport prints per-record validation diagnostics.
func ValidationReport(w io.Writer, key string, report *paper.Report) error {
	if report.Valid() {
		fmt.Fprintf(w, "ok: %s\n", key)
		return nil
	}
	fmt.Fprintf(w, "invalid: %s\n", key)
	for _, msg := range report.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}
	if attrs := report.InvalidAttrs(); len(attrs) > 0 {
		fmt.Fprintf(w, "  fields: %s\n", strings.Join(attrs, ", "))
	}
	return nil
}
