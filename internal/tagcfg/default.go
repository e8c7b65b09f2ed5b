// default.go defines the built-in tag configuration written by
// "papertrack init". The variable set matches the fields of paper.Paper;
// keeping them in sync is what lets Field/SetField round-trip every tag.

package tagcfg

// Default returns the built-in tag configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Tags: []Tag{
			{Variable: "doi", DisplayName: "DOI", Order: 0, Required: true},
			{Variable: "title", DisplayName: "Title", Order: 1, Required: true},
			{Variable: "authors", DisplayName: "Authors", Order: 2, Required: true},
			{Variable: "date", DisplayName: "Date", Order: 3, Validation: `^\d{4}(-\d{2}(-\d{2})?)?$`},
			{Variable: "category", DisplayName: "Category", Order: 4, Type: TypeEnum},
			{Variable: "summary_motivation", DisplayName: "Motivation", Order: 5},
			{Variable: "summary_innovation", DisplayName: "Innovation", Order: 6},
			{Variable: "summary_method", DisplayName: "Method", Order: 7},
			{Variable: "summary_conclusion", DisplayName: "Conclusion", Order: 8},
			{Variable: "summary_limitation", DisplayName: "Limitation", Order: 9},
			{Variable: "paper_url", DisplayName: "Paper URL", Order: 10},
			{Variable: "project_url", DisplayName: "Project URL", Order: 11},
			{Variable: "conference", DisplayName: "Conference", Order: 12},
			{Variable: "title_translation", DisplayName: "Title (translated)", Order: 13},
			{Variable: "analogy_summary", DisplayName: "Analogy", Order: 14},
			{Variable: "pipeline_image", DisplayName: "Pipeline Image", Order: 15},
			{Variable: "abstract", DisplayName: "Abstract", Order: 16},
			{Variable: "contributor", DisplayName: "Contributor", Order: 17},
			{Variable: "notes", DisplayName: "Notes", Order: 18},
			{Variable: "show_in_readme", DisplayName: "Show in README", Order: 19, Type: TypeBool, System: true},
			{Variable: "status", DisplayName: "Status", Order: 20, System: true},
			{Variable: "submission_time", DisplayName: "Submitted", Order: 21, System: true},
			{Variable: "invalid_fields", DisplayName: "Invalid Fields", Order: 22, System: true},
			{Variable: "conflict_marker", DisplayName: "Conflict", Order: 23, Type: TypeBool, System: true},
		},
		Categories: []Category{
			{UniqueName: "general", Name: "General", Order: 0},
			{UniqueName: "background", Name: "Background Papers", Order: 1},
			{UniqueName: "benchmarks", Name: "Evaluation and Benchmarks", Order: 2},
		},
	}
}
