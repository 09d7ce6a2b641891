package modify_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/unfence/pkg/modify"
)

func TestParseInstructions(t *testing.T) {
	t.Parallel()

	t.Run("bare json", func(t *testing.T) {
		t.Parallel()

		set, err := modify.ParseInstructions([]byte(`{"changes":[{"file":"a.txt","actions":[{"action":"append","content":["x"]}]}]}`))
		require.NoError(t, err)
		require.Len(t, set.Changes, 1)
		assert.Equal(t, "a.txt", set.Changes[0].File)
		assert.Equal(t, modify.ActionAppend, set.Changes[0].Actions[0].Type)
	})

	t.Run("fenced json", func(t *testing.T) {
		t.Parallel()

		doc := "Here are the changes:\n\n```json\n{\"changes\":[{\"file\":\"b.txt\",\"actions\":[]}]}\n```\n"
		set, err := modify.ParseInstructions([]byte(doc))
		require.NoError(t, err)
		require.Len(t, set.Changes, 1)
		assert.Equal(t, "b.txt", set.Changes[0].File)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := modify.ParseInstructions([]byte("{not json"))
		assert.Error(t, err)
	})
}

// writeFile creates a file with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func apply(t *testing.T, dir string, change modify.Change) modify.Result {
	t.Helper()
	e := &modify.Engine{BaseDir: dir}
	return e.Apply(context.Background(), modify.ChangeSet{Changes: []modify.Change{change}})
}

func TestApply_ReplaceBetweenMarkers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "# BEGIN generated\nold1\nold2\n# END generated\ntail\n")

	result := apply(t, dir, modify.Change{
		File: "conf.ini",
		Actions: []modify.Action{{
			Type:        modify.ActionReplaceBetweenMarkers,
			StartMarker: "BEGIN generated",
			EndMarker:   "END generated",
			NewContent:  []string{"new1", "new2", "new3"},
		}},
	})

	require.True(t, result.Ok())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# BEGIN generated\nnew1\nnew2\nnew3\n# END generated\ntail\n", string(got))
}

func TestApply_AppendSkipsExistingLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "list.txt", "alpha\nbeta\n")

	result := apply(t, dir, modify.Change{
		File: "list.txt",
		Actions: []modify.Action{{
			Type:    modify.ActionAppend,
			Content: []string{"beta", "gamma"},
		}},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "alpha\nbeta\ngamma\n", string(got))
}

func TestApply_PrependSkipsExistingLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "imports.py", "import os\nimport sys\n")

	result := apply(t, dir, modify.Change{
		File: "imports.py",
		Actions: []modify.Action{{
			Type:    modify.ActionPrepend,
			Content: []string{"import json", "import os"},
		}},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "import json\nimport os\nimport sys\n", string(got))
}

func TestApply_RegexReplace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "ver.go", "const version = \"1.2.3\"\nconst name = \"app\"\n")

	result := apply(t, dir, modify.Change{
		File: "ver.go",
		Actions: []modify.Action{{
			Type:        modify.ActionRegexReplace,
			Pattern:     `\d+\.\d+\.\d+`,
			Replacement: "2.0.0",
		}},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "const version = \"2.0.0\"\nconst name = \"app\"\n", string(got))
}

func TestApply_RegexReplaceBadPatternFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x\n")

	result := apply(t, dir, modify.Change{
		File:    "a.txt",
		Actions: []modify.Action{{Type: modify.ActionRegexReplace, Pattern: "("}},
	})

	require.Len(t, result.Failures, 1)
	assert.Empty(t, result.Updated)
}

func TestApply_ReplaceLineContaining(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "env.sh", "DEBUG=true\nPORT=8080\nDEBUG=true # dup\n")

	result := apply(t, dir, modify.Change{
		File: "env.sh",
		Actions: []modify.Action{{
			Type:            modify.ActionReplaceLineContaining,
			MatchSubstring:  "DEBUG=",
			ReplacementLine: "DEBUG=false",
		}},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "DEBUG=false\nPORT=8080\nDEBUG=false\n", string(got))
}

func TestApply_MissingFileIsSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeFile(t, dir, "here.txt", "a\n")

	e := &modify.Engine{BaseDir: dir}
	result := e.Apply(context.Background(), modify.ChangeSet{Changes: []modify.Change{
		{File: "absent.txt", Actions: []modify.Action{{Type: modify.ActionAppend, Content: []string{"x"}}}},
		{File: "here.txt", Actions: []modify.Action{{Type: modify.ActionAppend, Content: []string{"b"}}}},
	}})

	require.True(t, result.Ok())
	assert.Equal(t, []string{filepath.Join(dir, "absent.txt")}, result.Missing)
	assert.Equal(t, []string{existing}, result.Updated)

	got, _ := os.ReadFile(existing)
	assert.Equal(t, "a\nb\n", string(got))
}

func TestApply_UnknownActionIsIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "keep\n")

	result := apply(t, dir, modify.Change{
		File:    "a.txt",
		Actions: []modify.Action{{Type: "explode"}},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "keep\n", string(got))
}

func TestApply_ActionsComposeInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "one\n")

	result := apply(t, dir, modify.Change{
		File: "a.txt",
		Actions: []modify.Action{
			{Type: modify.ActionAppend, Content: []string{"two"}},
			{Type: modify.ActionReplaceLineContaining, MatchSubstring: "two", ReplacementLine: "2"},
		},
	})

	require.True(t, result.Ok())
	got, _ := os.ReadFile(path)
	assert.Equal(t, "one\n2\n", string(got))
}
