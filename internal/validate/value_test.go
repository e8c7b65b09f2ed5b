package validate_test

import (
	"testing"

	"github.com/qiwen-lab/papertrack/internal/validate"
	"github.com/stretchr/testify/assert"
)

func TestDOI(t *testing.T) {
	assert.NoError(t, validate.DOI(""))
	assert.NoError(t, validate.DOI("10.48550/arXiv.2401.00001"))
	assert.NoError(t, validate.DOI("10.1145/3581784"))

	assert.ErrorIs(t, validate.DOI("not-a-doi"), validate.ErrInvalidDOI)
	assert.ErrorIs(t, validate.DOI("10.12/short"), validate.ErrInvalidDOI)
	assert.ErrorIs(t, validate.DOI("10.1145/"), validate.ErrInvalidDOI)
}

func TestCleanDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1145/3581784", "10.1145/3581784"},
		{"https://doi.org/10.1145/3581784", "10.1145/3581784"},
		{"http://dx.doi.org/10.1145/3581784", "10.1145/3581784"},
		{"doi:10.1145/3581784", "10.1145/3581784"},
		{"  10.1145/3581784  ", "10.1145/3581784"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validate.CleanDOI(tt.in, ""), "CleanDOI(%q)", tt.in)
	}

	// Conflict markers are stripped before comparison.
	assert.Equal(t, "10.1145/3581784", validate.CleanDOI("[conflict] 10.1145/3581784", "[conflict]"))
}

func TestURL(t *testing.T) {
	assert.NoError(t, validate.URL(""))
	assert.NoError(t, validate.URL("https://arxiv.org/abs/2401.00001"))
	assert.NoError(t, validate.URL("http://example.com/paper.pdf"))

	assert.ErrorIs(t, validate.URL("arxiv.org/abs/2401.00001"), validate.ErrInvalidURL)
	assert.ErrorIs(t, validate.URL("ftp://example.com/x"), validate.ErrInvalidURL)
	assert.ErrorIs(t, validate.URL("https://"), validate.ErrInvalidURL)
}

func TestAuthors(t *testing.T) {
	assert.NoError(t, validate.Authors(""))
	assert.NoError(t, validate.Authors("Ada Lovelace"))
	assert.NoError(t, validate.Authors("Ada Lovelace, Alan Turing"))

	assert.ErrorIs(t, validate.Authors("Ada,,Alan"), validate.ErrInvalidAuthors)
	assert.ErrorIs(t, validate.Authors("Ada,"), validate.ErrInvalidAuthors)
}

func TestFormatAuthors(t *testing.T) {
	assert.Equal(t, "Ada Lovelace, Alan Turing", validate.FormatAuthors("Ada Lovelace,Alan Turing"))
	assert.Equal(t, "Ada Lovelace", validate.FormatAuthors("  Ada Lovelace  "))
	assert.Equal(t, "A, B", validate.FormatAuthors("A, ,B"))
}
