// value.go implements per-attribute value checks used by the record
// validator: DOI shape, URL shape, and author list formatting.
//
// These complement fields.go: fields.go guards the invalid_fields
// restriction list, value.go guards ordinary scalar attributes.

package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// doiRe matches a bare DOI (registrant prefix "10.", 4+ digit registrant,
// then a suffix). URLs like https://doi.org/10.1000/x are cleaned by the
// caller before this check.
var doiRe = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// DOI validates a cleaned DOI string. Empty values are valid; absence of a
// DOI is handled by required-field checks, not here.
func DOI(doi string) error {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return nil
	}
	if !doiRe.MatchString(doi) {
		return fmt.Errorf("%w: %q", ErrInvalidDOI, doi)
	}
	return nil
}

// CleanDOI strips common URL prefixes and a conflict marker from a DOI so
// that equivalent references compare equal. Returns the input trimmed when
// no prefix matches.
func CleanDOI(doi, conflictMarker string) string {
	s := strings.TrimSpace(doi)
	if conflictMarker != "" {
		s = strings.TrimSpace(strings.ReplaceAll(s, conflictMarker, ""))
	}
	for _, prefix := range []string{
		"https://doi.org/", "http://doi.org/",
		"https://dx.doi.org/", "http://dx.doi.org/",
		"doi.org/", "doi:",
	} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

// URL validates an absolute http(s) URL. Empty values are valid.
func URL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

// Authors validates a comma-separated author list: at least one author and
// no empty entries ("A,,B" indicates a mangled import). Empty values are
// valid.
func Authors(authors string) error {
	authors = strings.TrimSpace(authors)
	if authors == "" {
		return nil
	}
	for _, name := range strings.Split(authors, ",") {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty author entry in %q", ErrInvalidAuthors, authors)
		}
	}
	return nil
}

// FormatAuthors normalises a comma-separated author list to single-space
// separation after each comma, dropping empty entries.
func FormatAuthors(authors string) string {
	parts := strings.Split(authors, ",")
	var out []string
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, ", ")
}
