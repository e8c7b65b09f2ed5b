package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out := env.run("import", f)
	env.contains(out, "Imported: 10.48550/arXiv.1706.03762_Attention Is All You Need")
	env.contains(out, "2 imported, 0 duplicates, 0 conflicts, 0 invalid")

	ls := env.run("ls")
	env.contains(ls, "Attention Is All You Need")
	env.contains(ls, "Deep Residual Learning")
}

func TestImport_SecondRunSkipsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	env.run("import", f)
	out := env.run("import", f)
	env.contains(out, "0 imported, 2 duplicates, 0 conflicts, 0 invalid")
}

func TestImport_InvalidRecordsRejected(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", `Title,DOI,Authors,Invalid Fields
title,doi,authors,invalid_fields
Good,10.1145/1,Ada Lovelace,
Bad,10.1145/2,Alan Turing,nope_not_a_variable
`)

	out, err := env.runErr("import", f)
	assert.Error(t, err)
	env.contains(out, "1 imported, 0 duplicates, 0 conflicts, 1 invalid")
	env.contains(out, "nope_not_a_variable")

	ls := env.run("ls")
	env.contains(ls, "Good")
	assert.NotContains(t, ls, "Bad")
}

func TestImport_ConflictReplace(t *testing.T) {
	env := newTestEnv(t)
	f1 := env.write("v1.csv", `Title,DOI,Authors
title,doi,authors
Paper,10.1145/1,Ada Lovelace
`)
	f2 := env.write("v2.csv", `Title,DOI,Authors
title,doi,authors
Paper,10.1145/1,Someone Else
`)

	env.run("import", f1)
	out := env.run("import", f2, "--on-conflict", "replace")
	env.contains(out, "Conflict (replaced)")

	show := env.run("show", "10.1145/1", "--raw")
	env.contains(show, "Someone Else")
}

func TestImport_DryRun(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out := env.run("import", f, "--dry-run")
	env.contains(out, "Would import:")

	ls := env.run("ls")
	assert.NotContains(t, ls, "Attention")
}

func TestImport_RequiresAuthor(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")
	f := env.write("update.csv", testUpdateCSV)

	out, err := env.runErr("import", f)
	assert.Error(t, err)
	env.contains(out, "author not configured")

	// Explicit flag works without config.
	env.run("import", f, "-a", "Flag Author")
}

func TestImport_RequiresRepository(t *testing.T) {
	env := newBareEnv(t)
	f := env.write("update.csv", testUpdateCSV)

	out, err := env.runErr("import", f, "-a", "Someone")
	assert.Error(t, err)
	env.contains(out, "papertrack not initialised")
}
