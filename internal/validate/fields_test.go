package validate_test

import (
	"errors"
	"testing"

	"github.com/qiwen-lab/papertrack/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configuredVars mirrors a realistic tag configuration.
var configuredVars = validate.NewVariables([]string{
	"doi", "title", "authors", "date", "category", "paper_url",
	"abstract", "invalid_fields", "pipeline_image", "notes",
})

func TestFields(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		allowed validate.Variables
		wantErr error // nil means valid
	}{
		{name: "empty string", value: "", allowed: configuredVars},
		{name: "whitespace only", value: "   ", allowed: configuredVars},
		{name: "single variable", value: "doi", allowed: configuredVars},
		{name: "pipe separated", value: "doi|title", allowed: configuredVars},
		{name: "padded tokens", value: "doi| title |authors", allowed: configuredVars},
		{name: "doubled separator filtered", value: "doi||title", allowed: configuredVars},
		{name: "trailing separator filtered", value: "doi|", allowed: configuredVars},
		{name: "duplicates allowed", value: "doi|doi", allowed: configuredVars},
		{name: "underscore start", value: "_private", allowed: nil},

		{name: "legacy comma join", value: "doi,title", allowed: configuredVars, wantErr: validate.ErrIllegalIdentifier},
		{name: "legacy numeric ids", value: "0|1", allowed: configuredVars, wantErr: validate.ErrIllegalIdentifier},
		{name: "hyphenated name", value: "bad-name", allowed: configuredVars, wantErr: validate.ErrIllegalIdentifier},
		{name: "embedded space", value: "bad name", allowed: configuredVars, wantErr: validate.ErrIllegalIdentifier},
		{name: "leading digit", value: "1doi", allowed: configuredVars, wantErr: validate.ErrIllegalIdentifier},

		{name: "unknown variable", value: "unknown_field", allowed: configuredVars, wantErr: validate.ErrUnknownVariable},
		{name: "known then unknown", value: "doi|unknown_field", allowed: configuredVars, wantErr: validate.ErrUnknownVariable},
		{name: "no allowed set skips membership", value: "unknown_field", allowed: nil},
		{name: "empty allowed set skips membership", value: "unknown_field", allowed: validate.Variables{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Fields(tt.value, tt.allowed)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFields_MessageNamesOffendingToken(t *testing.T) {
	err := validate.Fields("doi|bad-name|title", configuredVars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad-name"`)

	err = validate.Fields("unknown_field", configuredVars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"unknown_field"`)
}

func TestFields_ShapeCheckedBeforeMembership(t *testing.T) {
	// A malformed token is also absent from the allowed set; the shape
	// failure must win so users see "corrupt format", not "stale config".
	err := validate.Fields("bad-name", configuredVars)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrIllegalIdentifier)
	assert.NotErrorIs(t, err, validate.ErrUnknownVariable)
}

func TestFields_FirstFailureWins(t *testing.T) {
	// "0" fails shape before "unknown_field" is reached.
	err := validate.Fields("0|unknown_field", configuredVars)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrIllegalIdentifier)
	assert.Contains(t, err.Error(), `"0"`)
}

func TestFields_Idempotent(t *testing.T) {
	for _, value := range []string{"", "doi|title", "doi,title", "unknown_field"} {
		first := validate.Fields(value, configuredVars)
		second := validate.Fields(value, configuredVars)
		if first == nil {
			assert.NoError(t, second)
			continue
		}
		require.Error(t, second)
		assert.Equal(t, first.Error(), second.Error())
	}
}

func TestFieldList(t *testing.T) {
	t.Run("empty sequence valid", func(t *testing.T) {
		assert.NoError(t, validate.FieldList(nil, configuredVars))
		assert.NoError(t, validate.FieldList([]string{}, configuredVars))
	})

	t.Run("blank elements ignored", func(t *testing.T) {
		assert.NoError(t, validate.FieldList([]string{"doi", "", "  ", "title"}, configuredVars))
	})

	t.Run("elements are single tokens", func(t *testing.T) {
		// A sequence element containing a separator is one (illegal) token;
		// no re-splitting happens.
		err := validate.FieldList([]string{"doi|title"}, configuredVars)
		require.Error(t, err)
		assert.ErrorIs(t, err, validate.ErrIllegalIdentifier)
	})

	t.Run("membership enforced", func(t *testing.T) {
		err := validate.FieldList([]string{"doi", "unknown_field"}, configuredVars)
		require.Error(t, err)
		assert.ErrorIs(t, err, validate.ErrUnknownVariable)
	})
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"doi", []string{"doi"}},
		{"doi|title|authors", []string{"doi", "title", "authors"}},
		{"doi||title", []string{"doi", "title"}},
		{"doi|", []string{"doi"}},
		{"| doi | title |", []string{"doi", "title"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validate.SplitFields(tt.value), "SplitFields(%q)", tt.value)
	}
}

func TestIdentifier(t *testing.T) {
	valid := []string{"doi", "paper_url", "_x", "a1", "A", "summary_method"}
	for _, v := range valid {
		assert.NoError(t, validate.Identifier(v), "Identifier(%q)", v)
	}

	invalid := []string{"", "0", "1abc", "bad-name", "a b", "doi,title", "π", "a.b"}
	for _, v := range invalid {
		err := validate.Identifier(v)
		require.Error(t, err, "Identifier(%q)", v)
		assert.True(t, errors.Is(err, validate.ErrIllegalIdentifier))
	}
}
