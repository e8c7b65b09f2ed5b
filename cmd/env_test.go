// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> importer/exporter -> store layer -> SQLite.
//
// The internal packages carry their own unit tests for the record validator,
// the update file codecs, and migration. The tests here prove the wiring:
// that a real binary run in a real directory produces the documented
// behaviour end to end.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the papertrack binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "papertrack-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "papertrack"
		if os.PathSeparator == '\\' {
			binaryName = "papertrack.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string // fake HOME, keeps global config and audit log isolated
	binary string
}

// newTestEnv creates a temporary directory with an initialised papertrack
// repository and a configured author.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newBareEnv(t)

	env.run("init")
	env.run("config", "--local", "author.name", "Test Author")

	return env
}

// newBareEnv creates a temporary directory without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatal(err)
	}
	return &testEnv{t: t, dir: dir, home: home, binary: buildBinary(t)}
}

// run executes papertrack with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("papertrack %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes papertrack and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write places a file with the given content inside the test directory
// and returns its name.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
	return name
}

// read returns the content of a file inside the test directory.
func (e *testEnv) read(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		e.t.Fatal(err)
	}
	return string(data)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// testUpdateCSV is a small valid update file used across tests.
const testUpdateCSV = `Title,DOI,Authors,Category,Invalid Fields
title,doi,authors,category,invalid_fields
Attention Is All You Need,10.48550/arXiv.1706.03762,Ashish Vaswani,general,
Deep Residual Learning,10.1109/CVPR.2016.90,Kaiming He,benchmarks,abstract|notes
`

// testLegacyCSV carries legacy separators and an order reference in
// invalid_fields.
const testLegacyCSV = `Title,DOI,Authors,Invalid Fields
title,doi,authors,invalid_fields
Legacy Paper,10.1145/1,Ada Lovelace,abstract;notes
Order Paper,10.1145/2,Alan Turing,16，notes
`
