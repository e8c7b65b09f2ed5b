package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExport_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)
	env.run("import", f)

	out := env.run("export", "out.json")
	env.contains(out, "Exported 2 papers")

	raw := env.read("out.json")
	assert.Contains(t, raw, `"papers"`)
	assert.Contains(t, raw, "Attention Is All You Need")
	assert.Contains(t, raw, `"invalid_fields": [`)

	// The exported file imports cleanly into a fresh repository.
	env2 := newTestEnv(t)
	env2.write("out.json", raw)
	imported := env2.run("import", "out.json")
	env2.contains(imported, "2 imported")
}

func TestExport_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)
	env.run("import", f)

	env.run("export", "general.csv", "--category", "general")
	raw := env.read("general.csv")
	assert.Contains(t, raw, "Attention Is All You Need")
	assert.NotContains(t, raw, "Deep Residual Learning")
}

func TestExport_MarkdownReadingList(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)
	env.run("import", f)

	out := env.run("export", "README.md")
	env.contains(out, "Exported 2 papers")

	md := env.read("README.md")
	assert.Contains(t, md, "# Papers")
	assert.Contains(t, md, "## General")
	assert.Contains(t, md, "| Attention Is All You Need | Ashish Vaswani |")
	assert.Contains(t, md, "## Evaluation and Benchmarks")
}

func TestExport_RefusesOverwrite(t *testing.T) {
	env := newTestEnv(t)
	f := env.write("update.csv", testUpdateCSV)
	env.run("import", f)
	env.write("out.csv", "existing content")

	out, err := env.runErr("export", "out.csv")
	assert.Error(t, err)
	env.contains(out, "file exists")

	env.run("export", "out.csv", "--force")
	assert.NotEqual(t, "existing content", env.read("out.csv"))
}

func TestExport_EmptyStore(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("export", "out.csv")
	assert.Error(t, err)
	env.contains(out, "no papers to export")
}
