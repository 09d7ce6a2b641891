package extract

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/unfence/pkg/pathsafe"
)

// PendingFile is a resolved target path plus the complete buffered body of
// one fenced block. It is produced by Scan and consumed by the committer.
type PendingFile struct {
	Path    pathsafe.ResolvedPath
	Content string
}

// Stats summarizes one scan for the run log and the CLI summary.
type Stats struct {
	// Lines is the number of document lines processed.
	Lines int

	// Fences is the number of fence lines encountered.
	Fences int

	// Headings is the number of path-declaring headings encountered.
	Headings int

	// Files is the number of pending files emitted.
	Files int

	// EmptyBlocks counts blocks with an active filename but no body; these
	// produce no file.
	EmptyBlocks int

	// DiscardedBlocks counts blocks whose body was dropped because no
	// filename was active when the block closed.
	DiscardedBlocks int

	// Unterminated is true when the document ended inside an open fence.
	Unterminated bool
}

// Options configures a scan.
type Options struct {
	// BaseDir anchors every resolved path. Required.
	BaseDir string

	// Logger receives per-event debug output. Nil disables logging.
	Logger *log.Logger
}

// scanner holds the mutable state of one parse. It lives for exactly one
// Scan call; nothing persists across documents.
type scanner struct {
	baseDir string
	logger  *log.Logger

	insideBlock  bool
	active       *pathsafe.ResolvedPath
	buffer       strings.Builder
	blockHadBody bool

	files []PendingFile
	stats Stats
}

// Scan walks the document in a single left-to-right pass with one-line
// lookahead and returns the pending files in document order.
//
// The machine has two states. Outside a block, level-3 headings and
// filename-bearing fence info strings establish the active target path; all
// other prose is discarded. Inside a block, every line (including blank
// lines) is buffered verbatim when a filename is active. A closing fence, or
// the end of input, flushes the buffer as a PendingFile when the body is
// non-empty.
//
// Filename retention is permissive: a closing fence keeps the active
// filename, so a later fence that declares no path of its own reuses the
// most recent declaration. A new heading or filename-bearing info string
// always overrides it.
func Scan(doc *Document, opts Options) ([]PendingFile, Stats) {
	s := &scanner{
		baseDir: opts.BaseDir,
		logger:  opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	lines := doc.Lines()
	// A trailing empty line is the final newline, not an extra blank body
	// line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		s.stats.Lines++

		c := classifyLine(line)
		switch c.kind {
		case lineFence:
			s.stats.Fences++
			if s.insideBlock {
				s.closeBlock()
				continue
			}
			i += s.openBlock(c.info, lines, i)

		case lineHeading:
			if s.insideBlock {
				s.bodyLine(line)
				continue
			}
			s.stats.Headings++
			s.adopt(c.path, "heading")

		case linePlain:
			if s.insideBlock {
				s.bodyLine(line)
			}
			// Prose outside a block is discarded.
		}
	}

	if s.insideBlock {
		// Truncated response: treat end of input as an implicit close.
		s.stats.Unterminated = true
		s.logger.Debug("input ended inside an open fence, committing buffered block")
		s.closeBlock()
	}

	return s.files, s.stats
}

// openBlock handles a fence line seen outside a block. It returns the number
// of extra lines consumed by lookahead (0 or 1).
func (s *scanner) openBlock(info string, lines []string, pos int) int {
	s.insideBlock = true
	s.blockHadBody = false

	switch {
	case looksLikeFilename(info):
		s.adopt(info, "fence info")
		return 0
	case info != "":
		// A language tag; the previously established filename, if any,
		// remains active.
		s.logger.Debug("fence info treated as language tag", "info", info)
		return 0
	}

	// Bare fence with no filename established yet: one line of lookahead for
	// a filename-looking first line. With an active filename the first body
	// line is content, never a declaration; otherwise headed files whose
	// bodies start with a dotted line (imports, URLs) would lose that line to
	// a bogus new target.
	if s.active != nil {
		return 0
	}
	if next := pos + 1; next < len(lines) {
		candidate := strings.TrimSpace(lines[next])
		if looksLikeFilename(candidate) {
			s.stats.Lines++
			s.adopt(candidate, "lookahead")
			return 1
		}
	}
	return 0
}

// closeBlock handles a fence line seen inside a block, or end of input.
func (s *scanner) closeBlock() {
	s.insideBlock = false

	switch {
	case s.active != nil && s.buffer.Len() > 0:
		s.files = append(s.files, PendingFile{
			Path:    *s.active,
			Content: s.buffer.String(),
		})
		s.stats.Files++
		s.logger.Debug("block complete", "path", s.active.FullPath(), "bytes", s.buffer.Len())
	case s.active != nil:
		s.stats.EmptyBlocks++
		s.logger.Debug("empty block skipped", "path", s.active.FullPath())
	case s.blockHadBody:
		s.stats.DiscardedBlocks++
		s.logger.Debug("block discarded, no filename active")
	}

	s.buffer.Reset()
	s.blockHadBody = false
	// Permissive policy: the active filename survives the close.
}

// bodyLine buffers one line of block content. Blank lines are preserved.
func (s *scanner) bodyLine(line string) {
	s.blockHadBody = true
	if s.active == nil {
		return
	}
	s.buffer.WriteString(line)
	s.buffer.WriteByte('\n')
}

// adopt resolves a raw declared path and makes it the active target,
// replacing any previously pending one.
func (s *scanner) adopt(raw, source string) {
	resolved := pathsafe.Resolve(s.baseDir, raw)
	s.active = &resolved
	s.logger.Debug("target adopted", "path", resolved.FullPath(), "source", source)
}
