// csv.go implements the CSV update file encoding.
//
// Layout (from the interchange convention the tracker inherited):
//
//	row 1:  human-readable display names - ignored on read
//	row 2:  tag variables - the actual column mapping
//	row 3+: data rows
//
// Reading maps columns by the row-2 variables, so column order and unknown
// columns don't matter. Short rows are padded, blank rows skipped. Array
// fields are carried "|"-joined, which is already their canonical form.

package updatefile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
)

func readCSV(path string) ([]*paper.Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open update file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be short; we pad below
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s: need a display header and a variable header", ErrMalformed, path)
	}

	variables := make([]string, len(rows[1]))
	for i, v := range rows[1] {
		variables[i] = strings.TrimSpace(stripBOM(v))
	}

	var papers []*paper.Paper
	for _, row := range rows[2:] {
		if blankRow(row) {
			continue
		}
		if len(row) < len(variables) {
			row = append(row, make([]string, len(variables)-len(row))...)
		}

		p := paper.New()
		for i, variable := range variables {
			if variable == "" {
				continue
			}
			p.SetField(variable, strings.TrimSpace(row[i]))
		}
		papers = append(papers, p)
	}
	return papers, nil
}

func writeCSV(path string, papers []*paper.Paper, cfg *tagcfg.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create update file: %w", err)
	}
	defer f.Close()

	tags := cfg.ActiveTags()
	display := make([]string, len(tags))
	variables := make([]string, len(tags))
	for i, t := range tags {
		display[i] = t.Display()
		variables[i] = t.Variable
	}

	w := csv.NewWriter(f)
	if err := w.Write(display); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(variables); err != nil {
		return fmt.Errorf("write variable header: %w", err)
	}

	for _, p := range papers {
		row := make([]string, len(variables))
		for i, variable := range variables {
			row[i] = p.Field(variable)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// stripBOM removes a UTF-8 byte order mark, which spreadsheet tools like to
// prepend to the first cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
