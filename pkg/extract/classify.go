package extract

import (
	"regexp"
	"strings"
)

// lineKind tags the result of classifying a single input line.
type lineKind int

const (
	// linePlain is any line that is neither a fence nor a heading. Outside
	// a block it is prose and is discarded; inside a block it is body
	// content.
	linePlain lineKind = iota

	// lineFence is a code-fence line: three or more backticks, optionally
	// followed by a single non-whitespace info token.
	lineFence

	// lineHeading is a level-3 heading declaring a target file path.
	lineHeading
)

// Both patterns are anchored: they must match the full trimmed line. A fence
// with trailing prose or multiple info tokens is not a fence, and a deeper
// heading level is not a path declaration. Anything that fails both patterns
// is ordinary prose, never an error.
var (
	fencePattern   = regexp.MustCompile("^`{3,}[ \t]*([^`\\s]*)[ \t]*$")
	headingPattern = regexp.MustCompile(`^###\s+(.+?)\s*$`)
)

// classified is the tagged variant produced by classifyLine.
type classified struct {
	kind lineKind

	// info is the fence info string (may be empty) when kind is lineFence.
	info string

	// path is the raw declared path when kind is lineHeading. Surrounding
	// backticks are left for the resolver to trim.
	path string
}

// classifyLine classifies one line of input. The line is trimmed before
// matching so that indented fences still terminate blocks.
func classifyLine(line string) classified {
	trimmed := strings.TrimSpace(line)

	if m := fencePattern.FindStringSubmatch(trimmed); m != nil {
		return classified{kind: lineFence, info: m[1]}
	}
	if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
		return classified{kind: lineHeading, path: m[1]}
	}
	return classified{kind: linePlain}
}

// looksLikeFilename reports whether an info string or lookahead line names a
// file rather than a language. The heuristic is a literal dot: "notes.md" is
// a filename, "python" is a language tag.
func looksLikeFilename(s string) bool {
	return s != "" && strings.Contains(s, ".")
}
