// json.go implements the JSON update file encoding.
//
// Canonical shape is a {"papers": [...]} wrapper; a bare array and a single
// paper object are accepted on read for compatibility with hand-written
// files. Array fields (category, pipeline_image, invalid_fields) are real
// JSON arrays on disk and "|"-joined strings in memory.

package updatefile

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// document is the canonical on-disk JSON shape.
type document struct {
	Papers []map[string]any `json:"papers"`
}

func readJSON(path string) ([]*paper.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read update file: %w", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	papers := make([]*paper.Paper, 0, len(records))
	for _, rec := range records {
		p := paper.New()
		for key, val := range rec {
			p.SetField(key, jsonValueToField(key, val))
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// decodeRecords accepts the wrapper object, a bare array, or a single
// paper object.
func decodeRecords(data []byte) ([]map[string]any, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Papers != nil {
		return doc.Papers, nil
	}

	var list []map[string]any
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single map[string]any
	if err := json.Unmarshal(data, &single); err == nil {
		if _, ok := single["title"]; ok {
			return []map[string]any{single}, nil
		}
		return nil, fmt.Errorf("object has neither a papers list nor a title")
	}

	return nil, fmt.Errorf("not a papers document")
}

// jsonValueToField converts a decoded JSON value into the attribute's
// canonical string form.
func jsonValueToField(key string, val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// JSON numbers arrive as float64; orders and years are integral.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		var parts []string
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "|")
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func writeJSON(path string, papers []*paper.Paper, cfg *tagcfg.Config) error {
	doc := document{Papers: make([]map[string]any, 0, len(papers))}

	for _, p := range papers {
		rec := make(map[string]any)
		for _, t := range cfg.ActiveTags() {
			value := p.Field(t.Variable)
			switch {
			case paper.ArrayFields[t.Variable]:
				items := validate.SplitFields(value)
				if items == nil {
					items = []string{}
				}
				rec[t.Variable] = items
			case t.Type == tagcfg.TypeBool:
				rec[t.Variable] = paper.ParseBool(value, false)
			default:
				rec[t.Variable] = value
			}
		}
		doc.Papers = append(doc.Papers, rec)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal papers: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write update file: %w", err)
	}
	return nil
}
