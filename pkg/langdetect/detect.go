// Package langdetect chooses fence language tags for bundled files.
// It wraps go-enry, preferring the filename and falling back to content
// analysis, and guarantees the returned tag is safe to place on a fence
// line: a tag containing a dot would be read back as a filename.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// PlainTag is returned when no language can be determined.
const PlainTag = "text"

// TagForFile returns the fence tag for a file being bundled. The filename
// is the strongest signal (extension, well-known names like Dockerfile);
// shebangs and content classification cover extensionless scripts.
func TagForFile(name string, content []byte) string {
	if lang := enry.GetLanguage(filepath.Base(name), content); lang != "" {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}
	return PlainTag
}

// normalize converts an enry language name into a fence tag.
func normalize(lang string) string {
	tag := strings.ToLower(lang)
	if tag == "shell" {
		tag = "bash"
	}
	tag = strings.ReplaceAll(tag, " ", "-")

	// A dotted or backticked tag would not survive a round trip through
	// the extractor's fence classifier.
	if strings.ContainsAny(tag, ".`\"'") {
		return PlainTag
	}
	return tag
}
