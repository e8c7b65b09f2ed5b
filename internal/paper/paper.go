// Package paper defines the paper record model and its validation.
//
// A Paper is one tracked research paper. Every attribute a user can edit is
// addressable by its tag variable name (see Field and SetField), which is
// what lets the storage adapters, the record validator, and the migration
// tooling treat records generically against the tag configuration.
package paper

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Paper is a single paper record. All scalar attributes are strings in
// their storage form; array-valued attributes (category, pipeline_image,
// invalid_fields) hold the canonical "|"-joined encoding.
type Paper struct {
	DOI      string
	Title    string
	Authors  string
	Date     string
	Category string

	SummaryMotivation string
	SummaryInnovation string
	SummaryMethod     string
	SummaryConclusion string
	SummaryLimitation string

	PaperURL   string
	ProjectURL string

	Conference       string
	TitleTranslation string
	AnalogySummary   string
	PipelineImage    string
	Abstract         string
	Contributor      string
	Notes            string

	// System attributes, maintained by the tool.
	ShowInReadme   bool
	Status         string // "", "unread", "reading", "done", "adopted"
	SubmissionTime string
	ConflictMarker bool
	InvalidFields  string // "|"-joined restriction list of tag variables
}

// New returns a Paper with system defaults applied.
func New() *Paper {
	return &Paper{ShowInReadme: true}
}

// fieldOrder is the canonical attribute order, matching the default tag
// configuration. Storage adapters iterate this for stable output.
var fieldOrder = []string{
	"doi", "title", "authors", "date", "category",
	"summary_motivation", "summary_innovation", "summary_method",
	"summary_conclusion", "summary_limitation",
	"paper_url", "project_url",
	"conference", "title_translation", "analogy_summary",
	"pipeline_image", "abstract", "contributor", "notes",
	"show_in_readme", "status", "submission_time", "invalid_fields",
	"conflict_marker",
}

// FieldNames returns all attribute variable names in canonical order.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ArrayFields are the attributes stored as arrays in JSON and "|"-joined
// strings in CSV and the database.
var ArrayFields = map[string]bool{
	"category":       true,
	"pipeline_image": true,
	"invalid_fields": true,
}

// Field returns the attribute value for a tag variable, as a string.
// Unknown variables return "".
func (p *Paper) Field(variable string) string {
	switch variable {
	case "doi":
		return p.DOI
	case "title":
		return p.Title
	case "authors":
		return p.Authors
	case "date":
		return p.Date
	case "category":
		return p.Category
	case "summary_motivation":
		return p.SummaryMotivation
	case "summary_innovation":
		return p.SummaryInnovation
	case "summary_method":
		return p.SummaryMethod
	case "summary_conclusion":
		return p.SummaryConclusion
	case "summary_limitation":
		return p.SummaryLimitation
	case "paper_url":
		return p.PaperURL
	case "project_url":
		return p.ProjectURL
	case "conference":
		return p.Conference
	case "title_translation":
		return p.TitleTranslation
	case "analogy_summary":
		return p.AnalogySummary
	case "pipeline_image":
		return p.PipelineImage
	case "abstract":
		return p.Abstract
	case "contributor":
		return p.Contributor
	case "notes":
		return p.Notes
	case "show_in_readme":
		return strconv.FormatBool(p.ShowInReadme)
	case "status":
		return p.Status
	case "submission_time":
		return p.SubmissionTime
	case "invalid_fields":
		return p.InvalidFields
	case "conflict_marker":
		return strconv.FormatBool(p.ConflictMarker)
	}
	return ""
}

// SetField sets the attribute for a tag variable from its string form.
// Unknown variables are ignored, mirroring how update files may carry
// columns this version doesn't know about.
func (p *Paper) SetField(variable, value string) {
	switch variable {
	case "doi":
		p.DOI = value
	case "title":
		p.Title = value
	case "authors":
		p.Authors = value
	case "date":
		p.Date = value
	case "category":
		p.Category = value
	case "summary_motivation":
		p.SummaryMotivation = value
	case "summary_innovation":
		p.SummaryInnovation = value
	case "summary_method":
		p.SummaryMethod = value
	case "summary_conclusion":
		p.SummaryConclusion = value
	case "summary_limitation":
		p.SummaryLimitation = value
	case "paper_url":
		p.PaperURL = value
	case "project_url":
		p.ProjectURL = value
	case "conference":
		p.Conference = value
	case "title_translation":
		p.TitleTranslation = value
	case "analogy_summary":
		p.AnalogySummary = value
	case "pipeline_image":
		p.PipelineImage = value
	case "abstract":
		p.Abstract = value
	case "contributor":
		p.Contributor = value
	case "notes":
		p.Notes = value
	case "show_in_readme":
		p.ShowInReadme = ParseBool(value, true)
	case "status":
		p.Status = value
	case "submission_time":
		p.SubmissionTime = value
	case "invalid_fields":
		p.InvalidFields = value
	case "conflict_marker":
		p.ConflictMarker = ParseBool(value, false)
	}
}

// ParseBool interprets the boolean spellings accepted in update files.
// Unrecognised values fall back to def.
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	case "false", "no", "n", "0":
		return false
	}
	return def
}

// IsBoolLiteral reports whether s is one of the accepted boolean spellings.
func IsBoolLiteral(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no", "y", "n", "1", "0":
		return true
	}
	return false
}

// Key returns the human-readable identity key (doi + title) used in
// diagnostics and duplicate reports.
func (p *Paper) Key() string {
	return p.DOI + "_" + p.Title
}

// UID derives a stable 16-hex-char identifier from the paper's identity.
// Used as the database primary key and the asset directory name.
func (p *Paper) UID() string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		// Unreachable with a nil key, but don't silently ignore.
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(strings.ToLower(strings.TrimSpace(p.DOI))))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(p.Title))))
	return hex.EncodeToString(h.Sum(nil))
}

// Touch stamps the submission time with the current moment if unset.
func (p *Paper) Touch(now time.Time) {
	if p.SubmissionTime == "" {
		p.SubmissionTime = now.UTC().Format(time.RFC3339)
	}
}
