package extract

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// VerifyResult compares the line scanner's fence accounting against a full
// CommonMark parse of the same source.
type VerifyResult struct {
	// ScannerBlocks is the number of fenced blocks the line scanner saw,
	// counting an unterminated trailing fence as one block.
	ScannerBlocks int

	// MarkdownBlocks is the number of fenced code blocks in the goldmark
	// AST.
	MarkdownBlocks int
}

// Agree reports whether the two counts match. A mismatch usually means the
// document is truncated or uses fence constructs (indentation, nesting) the
// scanner deliberately treats as prose; extraction still proceeds, but the
// caller should surface a warning.
func (r VerifyResult) Agree() bool {
	return r.ScannerBlocks == r.MarkdownBlocks
}

// Verify cross-checks a scan against goldmark's view of the document.
func Verify(source []byte, stats Stats) VerifyResult {
	fences := stats.Fences
	if stats.Unterminated {
		fences++
	}

	return VerifyResult{
		ScannerBlocks:  fences / 2,
		MarkdownBlocks: countFencedBlocks(source),
	}
}

// countFencedBlocks parses the source and counts fenced code blocks.
func countFencedBlocks(source []byte) int {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	count := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindFencedCodeBlock {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}
