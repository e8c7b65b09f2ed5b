package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidFile(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out := env.run("validate", f)
	env.contains(out, "2 papers checked, 0 invalid")
	env.contains(out, "ok: 10.48550/arXiv.1706.03762_Attention Is All You Need")
}

func TestValidate_UnknownVariable(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", `Title,DOI,Authors,Invalid Fields
title,doi,authors,invalid_fields
Bad Paper,10.1145/1,Ada Lovelace,no_such_field
`)

	out, err := env.runErr("validate", f)
	assert.Error(t, err)
	env.contains(out, "invalid: 10.1145/1_Bad Paper")
	env.contains(out, "no_such_field")
	env.contains(out, "fields: invalid_fields")
}

func TestValidate_IllegalIdentifier(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", `Title,DOI,Authors,Invalid Fields
title,doi,authors,invalid_fields
Bad Paper,10.1145/1,Ada Lovelace,not-an-identifier
`)

	out, err := env.runErr("validate", f)
	assert.Error(t, err)
	env.contains(out, "not-an-identifier")
}

func TestValidate_BadDOI(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", `Title,DOI,Authors
title,doi,authors
Bad Paper,not-a-doi,Ada Lovelace
`)

	out, err := env.runErr("validate", f)
	assert.Error(t, err)
	env.contains(out, "fields: doi")
}

func TestValidate_RequiredFlag(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", `Title,DOI
title,doi
No Authors,10.1145/1
`)

	// Without --required the missing authors pass.
	env.run("validate", f)

	out, err := env.runErr("validate", f, "--required")
	assert.Error(t, err)
	env.contains(out, "required field empty")
}

func TestValidate_MultipleFiles(t *testing.T) {
	env := newTestEnv(t)
	f1 := env.write("a.csv", testUpdateCSV)
	f2 := env.write("b.csv", `Title,DOI,Authors,Invalid Fields
title,doi,authors,invalid_fields
Bad Paper,10.1145/1,Ada Lovelace,no_such_field
`)

	out, err := env.runErr("validate", f1, f2)
	assert.Error(t, err)
	env.contains(out, "3 papers checked, 1 invalid")
}

func TestValidate_WorksWithoutRepository(t *testing.T) {
	env := newBareEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out := env.run("validate", f)
	env.contains(out, "0 invalid")
}

func TestValidate_JSON(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out := env.run("validate", f, "-o", "json")
	env.contains(out, `"total":2`)
	env.contains(out, `"invalid":0`)
}
