package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/unfence/internal/cli"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "none", Date: "unknown"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.md")
	doc := "### main.go\n```go\npackage main\n```\n" +
		"### docs/readme.md\n```\n# hi\n```\n"
	require.NoError(t, os.WriteFile(input, []byte(doc), 0644))

	out := filepath.Join(dir, "tree")
	stdout, err := execute(t, "extract", input, "-d", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 files written")

	got, err := os.ReadFile(filepath.Join(out, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(got))

	got, err = os.ReadFile(filepath.Join(out, "docs", "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(got))
}

func TestExtractCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.md")
	require.NoError(t, os.WriteFile(input, []byte("### a.txt\n```\nx\n```\n"), 0644))

	out := filepath.Join(dir, "tree")
	stdout, err := execute(t, "extract", input, "-d", out, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "would be written")

	_, statErr := os.Stat(filepath.Join(out, "a.txt"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not write files")
}

func TestExtractCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "extract", filepath.Join(dir, "absent.md"), "-d", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeForError(err))
}

func TestExtractCommand_SummaryAndVerify(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "session.md")
	require.NoError(t, os.WriteFile(input, []byte("### a.txt\n```\nx\n```\n"), 0644))

	stdout, err := execute(t, "extract", input, "-d", filepath.Join(dir, "out"), "--summary", "--verify")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Extraction")
	assert.Contains(t, stdout, "Files found:       1")
}

func TestBundleCommand_RoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "pkg", "a.go"), []byte("package a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("hello\n"), 0644))

	output := filepath.Join(t.TempDir(), "bundle.md")
	stdout, err := execute(t, "bundle", src, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 files bundled")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "### pkg/a.go")
	assert.Contains(t, string(content), "### top.txt")

	// Extract the bundle into a fresh directory and compare.
	restore := filepath.Join(t.TempDir(), "restore")
	_, err = execute(t, "extract", output, "-d", restore)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(restore, "pkg", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(got))
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(target, []byte("alpha\n"), 0644))

	instructions := filepath.Join(dir, "changes.json")
	require.NoError(t, os.WriteFile(instructions, []byte(
		`{"changes":[{"file":"list.txt","actions":[{"action":"append","content":["beta"]}]}]}`), 0644))

	stdout, err := execute(t, "apply", instructions, "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file updated")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", string(got))
}

func TestApplyCommand_BadInstructions(t *testing.T) {
	dir := t.TempDir()
	instructions := filepath.Join(dir, "changes.json")
	require.NoError(t, os.WriteFile(instructions, []byte("{broken"), 0644))

	_, err := execute(t, "apply", instructions, "-d", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCodeForError(err))
}

func TestInitCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), ".unfence.yml")

	_, err := execute(t, "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "base_dir:")

	// A second init without --force refuses to overwrite.
	_, err = execute(t, "init", "--output", output)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeForError(err))

	_, err = execute(t, "init", "--output", output, "--force")
	assert.NoError(t, err)
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, cli.ExitSuccess},
		{"files failed", cli.ErrFilesFailed, cli.ExitFailures},
		{"wrapped files failed", errors.Join(errors.New("ctx"), cli.ErrFilesFailed), cli.ExitFailures},
		{"explicit exit error", &cli.ExitError{Code: cli.ExitDataError, Err: errors.New("bad json")}, cli.ExitDataError},
		{"unknown error", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeForError(tt.err))
		})
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, err := execute(t, "extract", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeForError(err))
}
