package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/unfence/pkg/bundle"
	"github.com/yaklabco/unfence/pkg/commit"
	"github.com/yaklabco/unfence/pkg/extract"
	"github.com/yaklabco/unfence/pkg/modify"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// pluralFiles returns "file" or "files" for a count.
func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatExtractOneLine formats an extraction result as a single line.
// Example: "4 files written (1 failed), 12 fences in 87 lines".
func (s *Styles) FormatExtractOneLine(stats extract.Stats, result commit.Result, dryRun bool) string {
	if stats.Files == 0 {
		return s.Warning.Render("No files found in document") +
			s.Dim.Render(fmt.Sprintf(" (%d lines, %d fences)", stats.Lines, stats.Fences)) + "\n"
	}

	var parts []string
	if dryRun {
		parts = append(parts, fmt.Sprintf("%d %s would be written", stats.Files, pluralFiles(stats.Files)))
	} else {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s written", len(result.Written), pluralFiles(len(result.Written)))))
		if n := len(result.Failures); n > 0 {
			parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", n)))
		}
	}
	parts = append(parts, s.Dim.Render(fmt.Sprintf("%d fences in %d lines", stats.Fences, stats.Lines)))

	return strings.Join(parts, ", ") + "\n"
}

// FormatExtractSummary formats an extraction result as a summary block.
func (s *Styles) FormatExtractSummary(stats extract.Stats, result commit.Result, dryRun bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Extraction"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Lines scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.Lines)) + "\n")
	builder.WriteString("  Fence lines:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Fences)) + "\n")
	builder.WriteString("  Headings:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Headings)) + "\n")
	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Files)) + "\n")

	if stats.EmptyBlocks > 0 {
		builder.WriteString("  Empty blocks:      " +
			s.Dim.Render(strconv.Itoa(stats.EmptyBlocks)) + "\n")
	}
	if stats.DiscardedBlocks > 0 {
		builder.WriteString("  Discarded blocks:  " +
			s.Dim.Render(strconv.Itoa(stats.DiscardedBlocks)) + "\n")
	}
	if stats.Unterminated {
		builder.WriteString("  " + s.Warning.Render("Document ends inside an open block") + "\n")
	}

	builder.WriteString("\n")

	switch {
	case dryRun:
		builder.WriteString(s.Bold.Render(fmt.Sprintf("Dry run: %d %s would be written", stats.Files, pluralFiles(stats.Files))))
	case len(result.Failures) > 0:
		builder.WriteString(s.Failure.Render(fmt.Sprintf("%d written, %d failed", len(result.Written), len(result.Failures))))
	default:
		builder.WriteString(s.Success.Render(fmt.Sprintf("%d %s written", len(result.Written), pluralFiles(len(result.Written)))))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatBundleOneLine formats a bundling result as a single line.
func (s *Styles) FormatBundleOneLine(stats bundle.Stats, written bool, output string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d %s bundled", stats.Files, pluralFiles(stats.Files)))

	if stats.Ignored > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d ignored", stats.Ignored)))
	}
	if stats.Skipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.Skipped)))
	}

	if written {
		parts = append(parts, s.Success.Render(fmt.Sprintf("wrote %s (%d bytes)", output, stats.Bytes)))
	} else {
		parts = append(parts, s.Dim.Render(output+" unchanged"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatApplyOneLine formats an apply result as a single line.
func (s *Styles) FormatApplyOneLine(result modify.Result) string {
	if len(result.Updated)+len(result.Missing)+len(result.Failures) == 0 {
		return s.Warning.Render("No changes to apply") + "\n"
	}

	var parts []string
	parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s updated", len(result.Updated), pluralFiles(len(result.Updated)))))
	if n := len(result.Missing); n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d missing", n)))
	}
	if n := len(result.Failures); n > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", n)))
	}

	return strings.Join(parts, ", ") + "\n"
}
