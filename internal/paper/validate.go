// validate.go implements the umbrella record validator.
//
// Each per-attribute check contributes at most one message to the record's
// report and marks the offending attribute, so downstream consumers can both
// print the diagnostics and highlight the fields that caused them. Checks
// never mutate the record and never abort the scan: a record with three bad
// attributes reports all three.

package paper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// Report is the aggregate outcome of validating one record. It is owned by
// the caller performing that validation; nothing here is shared.
type Report struct {
	Errors []string // one message per failed check, in check order

	invalid map[string]struct{}
	attrs   []string // invalid attribute names, first-marked order
}

// Valid reports whether no check failed.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Add records a failed check: the message joins the error list and the
// attribute joins the invalid-attribute set (once, regardless of how many
// checks it fails).
func (r *Report) Add(attribute, message string) {
	r.Errors = append(r.Errors, message)
	if r.invalid == nil {
		r.invalid = make(map[string]struct{})
	}
	if _, seen := r.invalid[attribute]; !seen {
		r.invalid[attribute] = struct{}{}
		r.attrs = append(r.attrs, attribute)
	}
}

// InvalidAttrs returns the attributes that failed at least one check, in
// the order they were first marked.
func (r *Report) InvalidAttrs() []string {
	out := make([]string, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// HasInvalid reports whether the named attribute failed a check.
func (r *Report) HasInvalid(attribute string) bool {
	_, ok := r.invalid[attribute]
	return ok
}

// ValidateOptions tunes which check groups run.
type ValidateOptions struct {
	CheckRequired bool   // enforce required tags
	ConflictMark  string // marker stripped from DOIs before format checks
}

// Validate runs every per-attribute check against the tag configuration and
// returns the record's report. The record is not modified.
func (p *Paper) Validate(cfg *tagcfg.Config, opts ValidateOptions) *Report {
	r := &Report{}

	// Attribute-specific format checks.
	if p.DOI != "" {
		if err := validate.DOI(validate.CleanDOI(p.DOI, opts.ConflictMark)); err != nil {
			r.Add("doi", err.Error())
		}
	}
	if err := validate.Authors(p.Authors); err != nil {
		r.Add("authors", err.Error())
	}
	if err := validate.URL(p.PaperURL); err != nil {
		r.Add("paper_url", err.Error())
	}
	if err := validate.URL(p.ProjectURL); err != nil {
		r.Add("project_url", err.Error())
	}

	// Required tags.
	if opts.CheckRequired {
		for _, t := range cfg.RequiredTags() {
			if strings.TrimSpace(p.Field(t.Variable)) == "" {
				r.Add(t.Variable, fmt.Sprintf("required field empty: %s (%s)", t.Display(), t.Variable))
			}
		}
	}

	// Type and pattern checks for every non-empty active tag.
	for _, t := range cfg.ActiveTags() {
		if t.Variable == "invalid_fields" {
			continue // dedicated hook below
		}
		value := p.Field(t.Variable)
		if strings.TrimSpace(value) == "" {
			continue
		}

		switch t.Type {
		case tagcfg.TypeBool:
			if !IsBoolLiteral(value) {
				r.Add(t.Variable, fmt.Sprintf("type mismatch: %s should be a boolean, got %q", t.Display(), value))
			}
		case tagcfg.TypeInt:
			if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
				r.Add(t.Variable, fmt.Sprintf("type mismatch: %s should be an integer, got %q", t.Display(), value))
			}
		case tagcfg.TypeFloat:
			if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
				r.Add(t.Variable, fmt.Sprintf("type mismatch: %s should be a number, got %q", t.Display(), value))
			}
		case tagcfg.TypeEnum:
			if t.Variable == "category" {
				// Multi-valued: each "|"-joined entry must be a known category.
				for _, cat := range validate.SplitFields(value) {
					if !containsString(cfg.CategoryNames(), cat) {
						r.Add(t.Variable, fmt.Sprintf("invalid category: %q", cat))
					}
				}
			}
		}

		if re := cfg.Pattern(t.Variable); re != nil && !re.MatchString(value) {
			r.Add(t.Variable, fmt.Sprintf("format mismatch: %s does not match its validation rule", t.Display()))
		}
	}

	p.validateInvalidFields(cfg, r)

	return r
}

// validateInvalidFields folds the invalid_fields restriction-list check into
// the record's report. With an empty attribute this is a no-op, so repeated
// validation of an empty or valid record never grows the report.
func (p *Paper) validateInvalidFields(cfg *tagcfg.Config, r *Report) {
	if strings.TrimSpace(p.InvalidFields) == "" {
		return
	}
	if err := validate.Fields(p.InvalidFields, cfg.Variables()); err != nil {
		r.Add("invalid_fields", err.Error())
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
