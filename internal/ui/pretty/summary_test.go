package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/unfence/pkg/bundle"
	"github.com/yaklabco/unfence/pkg/commit"
	"github.com/yaklabco/unfence/pkg/extract"
	"github.com/yaklabco/unfence/pkg/modify"
)

func TestFormatExtractOneLine(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	t.Run("no files found", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatExtractOneLine(extract.Stats{Lines: 10, Fences: 2}, commit.Result{}, false)
		assert.Contains(t, got, "No files found")
		assert.Contains(t, got, "10 lines")
	})

	t.Run("written with failure", func(t *testing.T) {
		t.Parallel()

		stats := extract.Stats{Lines: 87, Fences: 12, Files: 5}
		result := commit.Result{
			Written:  []string{"a", "b", "c", "d"},
			Failures: []commit.Failure{{Path: "e"}},
		}

		got := styles.FormatExtractOneLine(stats, result, false)
		assert.Contains(t, got, "4 files written")
		assert.Contains(t, got, "1 failed")
		assert.Contains(t, got, "12 fences in 87 lines")
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatExtractOneLine(extract.Stats{Files: 1}, commit.Result{}, true)
		assert.Contains(t, got, "1 file would be written")
	})
}

func TestFormatExtractSummary(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)
	stats := extract.Stats{
		Lines:        100,
		Fences:       8,
		Headings:     4,
		Files:        4,
		EmptyBlocks:  1,
		Unterminated: true,
	}
	result := commit.Result{Written: []string{"a", "b", "c", "d"}}

	got := styles.FormatExtractSummary(stats, result, false)

	assert.Contains(t, got, "Extraction")
	assert.Contains(t, got, "Lines scanned:     100")
	assert.Contains(t, got, "Files found:       4")
	assert.Contains(t, got, "Empty blocks:      1")
	assert.Contains(t, got, "open block")
	assert.Contains(t, got, "4 files written")
	assert.True(t, strings.HasSuffix(got, "\n"))
}

func TestFormatBundleOneLine(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	got := styles.FormatBundleOneLine(bundle.Stats{Files: 3, Ignored: 2, Bytes: 120}, true, "bundle.md")
	assert.Contains(t, got, "3 files bundled")
	assert.Contains(t, got, "2 ignored")
	assert.Contains(t, got, "wrote bundle.md (120 bytes)")

	got = styles.FormatBundleOneLine(bundle.Stats{Files: 3}, false, "bundle.md")
	assert.Contains(t, got, "bundle.md unchanged")
}

func TestFormatApplyOneLine(t *testing.T) {
	t.Parallel()

	styles := NewStyles(false)

	got := styles.FormatApplyOneLine(modify.Result{})
	assert.Contains(t, got, "No changes to apply")

	got = styles.FormatApplyOneLine(modify.Result{
		Updated: []string{"a"},
		Missing: []string{"b"},
	})
	assert.Contains(t, got, "1 file updated")
	assert.Contains(t, got, "1 missing")
}

func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{"always", "always", true},
		{"never", "never", false},
		{"auto with non-tty writer", "auto", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsColorEnabled(tt.mode, &strings.Builder{})
			assert.Equal(t, tt.want, got)
		})
	}
}
