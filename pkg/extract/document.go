// Package extract implements the markdown-to-filesystem extraction core: a
// single-pass line scanner that recognizes file-path declarations (level-3
// headings and fence info strings), accumulates fenced block bodies, and
// emits the pending files to be committed under a base directory.
//
// The parse is pure. Scan never touches the filesystem; committing the
// resulting PendingFiles is the commit package's job.
package extract

import (
	"bytes"
	"strings"
	"unicode"
)

// utf8BOM is the byte-order marker stripped from the head of the input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is an immutable, normalized sequence of input lines.
//
// Normalization happens once at load time: a leading byte-order marker is
// stripped and non-printable control bytes are dropped. Newline, carriage
// return, and tab survive; dropping tabs would corrupt tab-indented bodies
// and break the bundle/extract round trip.
type Document struct {
	lines []string
}

// NewDocument loads raw markdown text into a Document.
func NewDocument(raw []byte) *Document {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	cleaned := make([]rune, 0, len(raw))
	for _, r := range string(raw) {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned = append(cleaned, r)
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		cleaned = append(cleaned, r)
	}

	normalized := strings.ReplaceAll(string(cleaned), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	return &Document{lines: strings.Split(normalized, "\n")}
}

// Lines returns the normalized lines of the document.
func (d *Document) Lines() []string {
	return d.lines
}

// Len returns the number of lines in the document.
func (d *Document) Len() int {
	return len(d.lines)
}
