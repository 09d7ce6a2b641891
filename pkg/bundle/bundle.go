// Package bundle walks a directory tree and renders it as a single
// markdown document: one level-3 heading per file followed by a fenced
// block with its content. The output is the exact inverse of extraction,
// so bundling a tree and extracting the result reproduces the tree
// byte for byte.
package bundle

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/unfence/pkg/fsutil"
	"github.com/yaklabco/unfence/pkg/langdetect"
)

// Mode selects how Options.Patterns are interpreted.
type Mode string

const (
	// ModeExclude skips files matching any pattern. This is the default.
	ModeExclude Mode = "exclude"

	// ModeInclude bundles only files matching at least one pattern.
	ModeInclude Mode = "include"
)

// Options configures a bundling pass.
type Options struct {
	// Root is the directory to bundle.
	Root string

	// Output is the path the bundle will be written to. It is always
	// skipped during the walk so a bundle never swallows itself.
	Output string

	// Patterns are substring filters applied to each file's relative
	// path and base name, interpreted per Mode. An empty list bundles
	// everything not otherwise ignored.
	Patterns []string

	// Mode selects include or exclude semantics for Patterns.
	Mode Mode

	// DetectLang annotates each fence with a detected language tag.
	DetectLang bool

	// Logger receives per-file progress. Nil disables logging.
	Logger *log.Logger
}

// Stats summarizes one bundling pass.
type Stats struct {
	// Files is the number of files bundled.
	Files int

	// Skipped counts files left out by pattern filters or because they
	// were binary or unreadable.
	Skipped int

	// Ignored counts files excluded by ignore rule files.
	Ignored int

	// Bytes is the size of the rendered bundle.
	Bytes int
}

// vcsDirs are never descended into.
var vcsDirs = map[string]bool{".git": true, ".hg": true, ".svn": true}

// Build renders the bundle for opts.Root and returns it with its stats.
// Files are visited in lexical order, so output is deterministic for a
// given tree. Unreadable files are logged and skipped.
func Build(ctx context.Context, opts Options) ([]byte, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, Stats{}, err
	}
	output := ""
	if opts.Output != "" {
		if output, err = filepath.Abs(opts.Output); err != nil {
			return nil, Stats{}, err
		}
	}

	var (
		buf   bytes.Buffer
		stats Stats
		rules = map[string]ruleSet{}
	)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logger.Warn("cannot access path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && vcsDirs[d.Name()] {
				return filepath.SkipDir
			}
			parent := ruleSet(nil)
			if path != root {
				parent = rules[filepath.Dir(path)]
			}
			rules[path] = parent.extend(loadIgnoreRules(path))
			return nil
		}

		if path == output || strings.HasSuffix(path, fsutil.BackupSuffix) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rules[filepath.Dir(path)].Match(rel) {
			stats.Ignored++
			logger.Debug("ignored by rules", "path", rel)
			return nil
		}
		if !matchesPatterns(rel, opts.Patterns, opts.Mode) {
			stats.Skipped++
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", rel, "error", err)
			stats.Skipped++
			return nil
		}
		if bytes.IndexByte(content, 0) >= 0 {
			logger.Debug("skipping binary file", "path", rel)
			stats.Skipped++
			return nil
		}

		tag := ""
		if opts.DetectLang {
			tag = langdetect.TagForFile(rel, content)
		}
		writeSection(&buf, rel, tag, content)
		stats.Files++
		logger.Debug("bundled", "path", rel, "bytes", len(content))
		return nil
	})
	if walkErr != nil {
		return nil, stats, walkErr
	}

	stats.Bytes = buf.Len()
	return buf.Bytes(), stats, nil
}

// Write builds the bundle and writes it atomically to opts.Output,
// leaving the file untouched when the content has not changed. The
// returned bool reports whether the output was rewritten.
func Write(ctx context.Context, opts Options) (Stats, bool, error) {
	content, stats, err := Build(ctx, opts)
	if err != nil {
		return stats, false, err
	}
	written, err := fsutil.WriteAtomicIfChanged(ctx, opts.Output, content, fsutil.DefaultFileMode)
	return stats, written, err
}

// writeSection renders one file as a heading plus fenced block. The
// content always ends with exactly its own trailing newline before the
// closing fence; one is added only when the file itself lacks it.
func writeSection(buf *bytes.Buffer, rel, tag string, content []byte) {
	buf.WriteString("\n### ")
	buf.WriteString(rel)
	buf.WriteString("\n```")
	buf.WriteString(tag)
	buf.WriteByte('\n')
	buf.Write(content)
	if !bytes.HasSuffix(content, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString("```\n")
}

// matchesPatterns applies the include/exclude filter. An empty pattern
// list matches everything in either mode.
func matchesPatterns(rel string, patterns []string, mode Mode) bool {
	if len(patterns) == 0 {
		return true
	}

	matched := false
	base := filepath.Base(rel)
	for _, p := range patterns {
		if strings.Contains(rel, p) || strings.Contains(base, p) {
			matched = true
			break
		}
	}

	if mode == ModeInclude {
		return matched
	}
	return !matched
}
