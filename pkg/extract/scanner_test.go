package extract_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/unfence/pkg/extract"
)

const base = "/out"

func scan(t *testing.T, input string) ([]extract.PendingFile, extract.Stats) {
	t.Helper()

	doc := extract.NewDocument([]byte(input))
	return extract.Scan(doc, extract.Options{BaseDir: base})
}

func TestScan_HeadingDeclaresPath(t *testing.T) {
	t.Parallel()

	input := "### a/b.txt\n```\nhello\nworld\n```"
	files, stats := scan(t, input)

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "a", "b.txt"), files[0].Path.FullPath())
	assert.Equal(t, "hello\nworld\n", files[0].Content)
	assert.Equal(t, 1, stats.Headings)
	assert.Equal(t, 2, stats.Fences)
}

func TestScan_FilenameOnFenceLine(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "```notes.md\nline1\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "notes.md"), files[0].Path.FullPath())
	assert.Equal(t, "line1\n", files[0].Content)
}

func TestScan_FilenameOnLookaheadLine(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "```\nconfig.json\n{\"a\":1}\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "config.json"), files[0].Path.FullPath())
	assert.Equal(t, "{\"a\":1}\n", files[0].Content)
}

func TestScan_NoLookaheadWhenFilenameActive(t *testing.T) {
	t.Parallel()

	// The first body line of a headed file often contains a dot (imports,
	// URLs, prose). It must stay in the body, not become a new target.
	files, _ := scan(t, "### app.py\n```\nimport os.path\nprint(1)\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "app.py"), files[0].Path.FullPath())
	assert.Equal(t, "import os.path\nprint(1)\n", files[0].Content)
}

func TestScan_LanguageTagDoesNotSetFilename(t *testing.T) {
	t.Parallel()

	files, stats := scan(t, "```python\nprint('hi')\n```")

	assert.Empty(t, files)
	assert.Equal(t, 1, stats.DiscardedBlocks)
}

func TestScan_LanguageTagKeepsHeadingFilename(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### script.py\n```python\nprint('hi')\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "script.py"), files[0].Path.FullPath())
	assert.Equal(t, "print('hi')\n", files[0].Content)
}

func TestScan_FenceInfoOverridesHeading(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### old.txt\n```new.txt\ncontent\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "new.txt"), files[0].Path.FullPath())
}

func TestScan_UnterminatedFenceCommitsBuffer(t *testing.T) {
	t.Parallel()

	files, stats := scan(t, "### a.txt\n```\npartial\n")

	require.Len(t, files, 1)
	assert.Equal(t, "partial\n", files[0].Content)
	assert.True(t, stats.Unterminated)
}

func TestScan_EmptyBlockProducesNoFile(t *testing.T) {
	t.Parallel()

	files, stats := scan(t, "### a.txt\n```\n```")

	assert.Empty(t, files)
	assert.Equal(t, 1, stats.EmptyBlocks)
}

func TestScan_BlankBodyLinesPreserved(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### a.txt\n```\nfirst\n\nthird\n```")

	require.Len(t, files, 1)
	assert.Equal(t, "first\n\nthird\n", files[0].Content)
}

func TestScan_FilenameRetainedAcrossFences(t *testing.T) {
	t.Parallel()

	// Permissive policy: the second bare fence pair reuses a.txt since no
	// heading intervened. Same-path blocks are both emitted; the committer
	// applies last-write-wins on disk.
	input := "### a.txt\n```\none\n```\nprose between\n```\ntwo\n```"
	files, _ := scan(t, input)

	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(base, "a.txt"), files[0].Path.FullPath())
	assert.Equal(t, filepath.Join(base, "a.txt"), files[1].Path.FullPath())
	assert.Equal(t, "one\n", files[0].Content)
	assert.Equal(t, "two\n", files[1].Content)
}

func TestScan_MultipleFiles(t *testing.T) {
	t.Parallel()

	input := "intro prose\n" +
		"### src/main.go\n" +
		"```go\npackage main\n```\n" +
		"some explanation\n" +
		"### docs/readme.md\n" +
		"```\n# Title\n```\n"
	files, stats := scan(t, input)

	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(base, "src", "main.go"), files[0].Path.FullPath())
	assert.Equal(t, "package main\n", files[0].Content)
	assert.Equal(t, filepath.Join(base, "docs", "readme.md"), files[1].Path.FullPath())
	assert.Equal(t, "# Title\n", files[1].Content)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 2, stats.Headings)
}

func TestScan_TraversalContained(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### ../secret\n```\nx\n```")

	require.Len(t, files, 1)
	got := files[0].Path.FullPath()
	rel, err := filepath.Rel(base, got)
	require.NoError(t, err)
	assert.NotContains(t, rel, "..")
}

func TestScan_BacktickedHeadingPath(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### `cmd/main.go`\n```go\npackage main\n```")

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "cmd", "main.go"), files[0].Path.FullPath())
}

func TestScan_DeeperHeadingIsProse(t *testing.T) {
	t.Parallel()

	files, stats := scan(t, "#### not-a-path.txt\n```\nbody\n```")

	assert.Empty(t, files)
	assert.Equal(t, 0, stats.Headings)
	assert.Equal(t, 1, stats.DiscardedBlocks)
}

func TestScan_HeadingInsideBlockIsBody(t *testing.T) {
	t.Parallel()

	files, _ := scan(t, "### doc.md\n```\n### section\ntext\n```")

	require.Len(t, files, 1)
	assert.Equal(t, "### section\ntext\n", files[0].Content)
}

func TestScan_FenceWithTrailingProseIsPlain(t *testing.T) {
	t.Parallel()

	// "``` two tokens" fails the anchored fence pattern, so no block ever
	// opens.
	files, stats := scan(t, "``` two tokens\nnot a block\n")

	assert.Empty(t, files)
	assert.Equal(t, 0, stats.Fences)
}

func TestScan_Deterministic(t *testing.T) {
	t.Parallel()

	input := "### a.txt\n```\nhello\n```\n### b.txt\n```\nworld\n```"
	first, _ := scan(t, input)
	second, _ := scan(t, input)

	assert.Equal(t, first, second)
}
