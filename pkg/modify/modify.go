// Package modify applies JSON-described edits to existing files. An
// instruction document carries a list of changes, each naming a target
// file and an ordered list of line-oriented actions. Instruction files
// produced by other tools are often wrapped in a ```json fence; the
// parser unwraps that transparently.
package modify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/unfence/pkg/fsutil"
)

// Action types understood by the engine.
const (
	ActionReplaceBetweenMarkers = "replace_between_markers"
	ActionAppend                = "append"
	ActionPrepend               = "prepend"
	ActionRegexReplace          = "regex_replace"
	ActionReplaceLineContaining = "replace_line_containing"
)

// Action is one edit applied to a file's lines. Type selects the action;
// the remaining fields are read per type.
type Action struct {
	Type string `json:"action"`

	// replace_between_markers
	StartMarker string   `json:"start_marker,omitempty"`
	EndMarker   string   `json:"end_marker,omitempty"`
	NewContent  []string `json:"new_content,omitempty"`

	// append, prepend
	Content []string `json:"content,omitempty"`

	// regex_replace
	Pattern     string `json:"pattern,omitempty"`
	Replacement string `json:"replacement,omitempty"`

	// replace_line_containing
	MatchSubstring  string `json:"match_substring,omitempty"`
	ReplacementLine string `json:"replacement_line,omitempty"`
}

// Change is the ordered set of actions for one file.
type Change struct {
	File    string   `json:"file"`
	Actions []Action `json:"actions"`
}

// ChangeSet is a parsed instruction document.
type ChangeSet struct {
	Changes []Change `json:"changes"`
}

// jsonFence matches an instruction document wrapped in a ```json fence.
var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ParseInstructions parses an instruction document, unwrapping a ```json
// fence when present.
func ParseInstructions(raw []byte) (ChangeSet, error) {
	if m := jsonFence.FindSubmatch(raw); m != nil {
		raw = m[1]
	}

	var set ChangeSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return ChangeSet{}, fmt.Errorf("parsing instructions: %w", err)
	}
	return set, nil
}

// Failure records one change that could not be applied.
type Failure struct {
	File string
	Err  error
}

// Result summarizes an Apply pass.
type Result struct {
	// Updated lists files rewritten, in instruction order.
	Updated []string

	// Missing lists target files that did not exist and were skipped.
	Missing []string

	// Failures lists changes that errored.
	Failures []Failure
}

// Ok reports whether every change applied cleanly.
func (r Result) Ok() bool {
	return len(r.Failures) == 0
}

// Engine applies change sets to files on disk.
type Engine struct {
	// BaseDir anchors relative target paths. Empty means the current
	// working directory.
	BaseDir string

	// Logger receives per-change progress. Nil disables logging.
	Logger *log.Logger
}

// Apply runs every change in the set. A missing target is logged and
// skipped, a failing change is recorded, and later changes still run.
// Files are rewritten atomically.
func (e *Engine) Apply(ctx context.Context, set ChangeSet) Result {
	logger := e.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var result Result
	for _, change := range set.Changes {
		path := change.File
		if !filepath.IsAbs(path) && e.BaseDir != "" {
			path = filepath.Join(e.BaseDir, path)
		}

		content, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fsutil.ErrNotFound) {
				logger.Warn("target file not found", "path", path)
				result.Missing = append(result.Missing, path)
				continue
			}
			logger.Error("cannot read target", "path", path, "error", err)
			result.Failures = append(result.Failures, Failure{File: path, Err: err})
			continue
		}

		lines, err := applyActions(splitLines(content), change.Actions, logger)
		if err != nil {
			logger.Error("change failed", "path", path, "error", err)
			result.Failures = append(result.Failures, Failure{File: path, Err: err})
			continue
		}

		out := strings.Join(lines, "\n") + "\n"
		if err := fsutil.WriteAtomic(ctx, path, []byte(out), 0); err != nil {
			logger.Error("cannot write target", "path", path, "error", err)
			result.Failures = append(result.Failures, Failure{File: path, Err: err})
			continue
		}

		logger.Info("updated", "path", path, "actions", len(change.Actions))
		result.Updated = append(result.Updated, path)
	}
	return result
}

// applyActions folds the actions over the file's lines in order.
func applyActions(lines []string, actions []Action, logger *log.Logger) ([]string, error) {
	for _, a := range actions {
		switch a.Type {
		case ActionReplaceBetweenMarkers:
			lines = replaceBetweenMarkers(lines, a.StartMarker, a.EndMarker, a.NewContent)
		case ActionAppend:
			lines = append(lines, newLinesOnly(lines, a.Content)...)
		case ActionPrepend:
			lines = append(newLinesOnly(lines, a.Content), lines...)
		case ActionRegexReplace:
			replaced, err := regexReplace(lines, a.Pattern, a.Replacement)
			if err != nil {
				return nil, err
			}
			lines = replaced
		case ActionReplaceLineContaining:
			lines = replaceLineContaining(lines, a.MatchSubstring, a.ReplacementLine)
		default:
			logger.Warn("unknown action type", "action", a.Type)
		}
	}
	return lines, nil
}

// replaceBetweenMarkers swaps the lines strictly between the first line
// containing startMarker and the next line containing endMarker. Both
// marker lines are kept.
func replaceBetweenMarkers(lines []string, startMarker, endMarker string, newContent []string) []string {
	inside := false
	out := make([]string, 0, len(lines)+len(newContent))
	for _, line := range lines {
		switch {
		case strings.Contains(line, startMarker):
			out = append(out, line)
			out = append(out, newContent...)
			inside = true
		case inside && strings.Contains(line, endMarker):
			out = append(out, line)
			inside = false
		case !inside:
			out = append(out, line)
		}
	}
	return out
}

// newLinesOnly filters out lines already present in the file, so append
// and prepend stay idempotent.
func newLinesOnly(existing, candidate []string) []string {
	present := make(map[string]bool, len(existing))
	for _, line := range existing {
		present[line] = true
	}

	var fresh []string
	for _, line := range candidate {
		if !present[line] {
			fresh = append(fresh, line)
		}
	}
	return fresh
}

// regexReplace applies the pattern to every line independently.
func regexReplace(lines []string, pattern, replacement string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = re.ReplaceAllString(line, replacement)
	}
	return out, nil
}

// replaceLineContaining swaps every line containing the substring for the
// replacement line.
func replaceLineContaining(lines []string, substring, replacement string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.Contains(line, substring) {
			out[i] = replacement
		} else {
			out[i] = line
		}
	}
	return out
}

// splitLines splits file content into lines, tolerating CRLF and a
// trailing newline.
func splitLines(content []byte) []string {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
