// identity.go implements paper identity and duplicate detection.
//
// Two records are the "same paper" when their cleaned DOIs match or their
// normalised titles match. Whether they are a *duplicate entry* is stricter:
// same identity plus field-level equality (ignoring system attributes, which
// the tool rewrites on every import).

package paper

import (
	"strings"

	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/qiwen-lab/papertrack/internal/validate"
)

// normalizeDOI cleans a DOI for comparison: conflict marker removed, URL
// prefixes stripped, lowercased.
func normalizeDOI(doi, conflictMark string) string {
	return strings.ToLower(validate.CleanDOI(doi, conflictMark))
}

// SameIdentity reports whether a and b refer to the same paper, by DOI
// first and title second. Empty identifiers never match.
func SameIdentity(a, b *Paper, conflictMark string) bool {
	doiA := normalizeDOI(a.DOI, conflictMark)
	doiB := normalizeDOI(b.DOI, conflictMark)
	if doiA != "" && doiA == doiB {
		return true
	}

	titleA := strings.ToLower(strings.TrimSpace(a.Title))
	titleB := strings.ToLower(strings.TrimSpace(b.Title))
	return titleA != "" && titleA == titleB
}

// EqualOptions tunes field-level record comparison.
type EqualOptions struct {
	Complete     bool     // compare all fields, not just the subset rule
	IgnoreFields []string // defaults to the configuration's system tags
	ConflictMark string
}

// FieldsEqual compares two records attribute by attribute.
//
// With Complete unset, the newer record a counts as equal when its non-empty
// attributes form a subset of b's and each of them matches: a resubmission
// carrying less detail than the stored record is not a new version. With
// Complete set, every non-ignored attribute must match.
func FieldsEqual(a, b *Paper, cfg *tagcfg.Config, opts EqualOptions) bool {
	ignore := make(map[string]bool)
	if opts.IgnoreFields == nil {
		for _, t := range cfg.SystemTags() {
			ignore[t.Variable] = true
		}
	} else {
		for _, f := range opts.IgnoreFields {
			ignore[f] = true
		}
	}

	fieldOf := func(p *Paper, name string) string {
		v := p.Field(name)
		if name == "doi" {
			return normalizeDOI(v, opts.ConflictMark)
		}
		return strings.TrimSpace(v)
	}

	if opts.Complete {
		for _, name := range FieldNames() {
			if ignore[name] {
				continue
			}
			if fieldOf(a, name) != fieldOf(b, name) {
				return false
			}
		}
		return true
	}

	// Subset rule: every non-empty attribute of a must exist non-empty in b.
	for _, name := range FieldNames() {
		if ignore[name] {
			continue
		}
		va := fieldOf(a, name)
		if va == "" {
			continue
		}
		vb := fieldOf(b, name)
		if vb == "" || va != vb {
			return false
		}
	}
	return true
}

// IsDuplicate reports whether candidate duplicates an existing record: same
// identity as some existing paper whose fields also match.
func IsDuplicate(existing []*Paper, candidate *Paper, cfg *tagcfg.Config, opts EqualOptions) bool {
	for _, ex := range existing {
		if !SameIdentity(ex, candidate, opts.ConflictMark) {
			continue
		}
		if FieldsEqual(candidate, ex, cfg, opts) {
			return true
		}
	}
	return false
}
