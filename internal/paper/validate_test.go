package paper_test

import (
	"testing"

	"github.com/qiwen-lab/papertrack/internal/paper"
	"github.com/qiwen-lab/papertrack/internal/tagcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPaper() *paper.Paper {
	p := paper.New()
	p.DOI = "10.48550/arXiv.2401.00001"
	p.Title = "Example Paper"
	p.Authors = "Ada Lovelace, Alan Turing"
	p.Category = "general"
	return p
}

func TestValidate_CleanRecord(t *testing.T) {
	cfg := tagcfg.Default()
	r := validPaper().Validate(cfg, paper.ValidateOptions{CheckRequired: true})

	assert.True(t, r.Valid())
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.InvalidAttrs())
}

func TestValidate_InvalidFieldsHook(t *testing.T) {
	cfg := tagcfg.Default()

	t.Run("unknown variable grows report by one", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = "unknown_field"

		r := p.Validate(cfg, paper.ValidateOptions{})
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], "unknown_field")
		assert.Equal(t, []string{"invalid_fields"}, r.InvalidAttrs())
		assert.True(t, r.HasInvalid("invalid_fields"))
	})

	t.Run("legacy comma format flagged as illegal identifier", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = "doi,title"

		r := p.Validate(cfg, paper.ValidateOptions{})
		require.Len(t, r.Errors, 1)
		assert.Contains(t, r.Errors[0], "illegal identifier")
		assert.True(t, r.HasInvalid("invalid_fields"))
	})

	t.Run("empty attribute is a no-op", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = ""

		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.Empty(t, r.Errors)
		assert.Empty(t, r.InvalidAttrs())
	})

	t.Run("whitespace attribute is a no-op", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = "   "

		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.Empty(t, r.Errors)
	})

	t.Run("valid restriction list", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = "doi|abstract"

		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.Valid())
	})

	t.Run("repeated validation is idempotent", func(t *testing.T) {
		p := validPaper()
		p.InvalidFields = "unknown_field"

		first := p.Validate(cfg, paper.ValidateOptions{})
		second := p.Validate(cfg, paper.ValidateOptions{})
		assert.Equal(t, first.Errors, second.Errors)
		assert.Equal(t, first.InvalidAttrs(), second.InvalidAttrs())
	})
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg := tagcfg.Default()
	p := paper.New()
	p.Title = "Only a title"

	r := p.Validate(cfg, paper.ValidateOptions{CheckRequired: true})
	assert.False(t, r.Valid())
	assert.True(t, r.HasInvalid("doi"))
	assert.True(t, r.HasInvalid("authors"))
	assert.False(t, r.HasInvalid("title"))

	// Without the required check the same record passes.
	r = p.Validate(cfg, paper.ValidateOptions{})
	assert.True(t, r.Valid())
}

func TestValidate_FormatChecks(t *testing.T) {
	cfg := tagcfg.Default()

	t.Run("bad doi", func(t *testing.T) {
		p := validPaper()
		p.DOI = "not-a-doi"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.HasInvalid("doi"))
	})

	t.Run("doi url is cleaned before the check", func(t *testing.T) {
		p := validPaper()
		p.DOI = "https://doi.org/10.48550/arXiv.2401.00001"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.False(t, r.HasInvalid("doi"))
	})

	t.Run("conflict marker stripped before the check", func(t *testing.T) {
		p := validPaper()
		p.DOI = "[conflict] 10.48550/arXiv.2401.00001"
		r := p.Validate(cfg, paper.ValidateOptions{ConflictMark: "[conflict]"})
		assert.False(t, r.HasInvalid("doi"))
	})

	t.Run("bad urls", func(t *testing.T) {
		p := validPaper()
		p.PaperURL = "arxiv.org/abs/2401.00001"
		p.ProjectURL = "ftp://example.com"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.HasInvalid("paper_url"))
		assert.True(t, r.HasInvalid("project_url"))
	})

	t.Run("bad category", func(t *testing.T) {
		p := validPaper()
		p.Category = "no_such_category"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.HasInvalid("category"))
	})

	t.Run("multiple categories", func(t *testing.T) {
		p := validPaper()
		p.Category = "general|benchmarks"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.False(t, r.HasInvalid("category"))

		p.Category = "general|nope"
		r = p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.HasInvalid("category"))
	})

	t.Run("date validation pattern", func(t *testing.T) {
		p := validPaper()
		p.Date = "January 2024"
		r := p.Validate(cfg, paper.ValidateOptions{})
		assert.True(t, r.HasInvalid("date"))

		p.Date = "2024-01"
		r = p.Validate(cfg, paper.ValidateOptions{})
		assert.False(t, r.HasInvalid("date"))
	})
}

func TestReport_AttributeMarkedOnce(t *testing.T) {
	r := &paper.Report{}
	r.Add("doi", "first problem")
	r.Add("doi", "second problem")
	r.Add("title", "third problem")

	assert.Len(t, r.Errors, 3)
	assert.Equal(t, []string{"doi", "title"}, r.InvalidAttrs())
}

func TestValidate_MultipleFailuresAllReported(t *testing.T) {
	cfg := tagcfg.Default()
	p := paper.New()
	p.Title = "t"
	p.DOI = "bad"
	p.Authors = "A,,B"
	p.InvalidFields = "0|1"

	r := p.Validate(cfg, paper.ValidateOptions{})
	assert.GreaterOrEqual(t, len(r.Errors), 3)
	assert.True(t, r.HasInvalid("doi"))
	assert.True(t, r.HasInvalid("authors"))
	assert.True(t, r.HasInvalid("invalid_fields"))
}
