// Package pathsafe turns untrusted path-like strings into safe paths anchored
// at a base directory. It is the safety boundary between model-produced text
// and the filesystem: every component is sanitized independently, and the
// resolved path can never escape the base directory.
package pathsafe

import (
	"path/filepath"
	"strings"
	"unicode"
)

// placeholder replaces components that sanitize to nothing (or to a dot
// component). Keeping a placeholder instead of dropping the component
// preserves the positional structure of the declared path.
const placeholder = "_"

// ResolvedPath is a sanitized (directory, filename) pair anchored at a base
// directory. It is immutable once produced.
type ResolvedPath struct {
	// Dir is the target directory, always the base directory or a
	// descendant of it.
	Dir string

	// Name is the sanitized filename, never empty.
	Name string
}

// FullPath returns the complete target path.
func (p ResolvedPath) FullPath() string {
	return filepath.Join(p.Dir, p.Name)
}

// Resolve converts a raw path-like string into a ResolvedPath under baseDir.
//
// The raw string may be a bare filename or a slash/backslash-delimited
// relative path, possibly wrapped in backticks or quotes. Absolute-looking
// input is treated as relative: separators only ever split components, so a
// leading "/" or a drive prefix cannot anchor the result outside baseDir.
//
// Resolve is total. Every input maps to some valid path; callers never
// receive an error.
func Resolve(baseDir, raw string) ResolvedPath {
	s := trimWrapping(strings.TrimSpace(raw))

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	if len(parts) == 0 {
		return ResolvedPath{Dir: baseDir, Name: placeholder}
	}

	sanitized := make([]string, len(parts))
	for i, part := range parts {
		sanitized[i] = SanitizeComponent(part)
	}

	dir := baseDir
	for _, seg := range sanitized[:len(sanitized)-1] {
		dir = filepath.Join(dir, seg)
	}

	return ResolvedPath{Dir: dir, Name: sanitized[len(sanitized)-1]}
}

// SanitizeComponent sanitizes a single path component. The result is always a
// non-empty string containing no separator, no character from `<>:"/\|?*`,
// and no control characters. Dot components ("." and "..") are mapped to the
// placeholder so they can never collapse or climb the directory structure;
// dotfile names like ".gitignore" pass through.
func SanitizeComponent(component string) string {
	s := strings.TrimSpace(component)
	s = stripHeadingRemnant(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r) || !unicode.IsPrint(r):
			// Dropped entirely.
		case isIllegalFilenameRune(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" || out == "." || out == ".." {
		return placeholder
	}
	return out
}

// trimWrapping removes a single layer of wrapping backticks or quotes from
// the whole string.
func trimWrapping(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return s
	}
	switch first {
	case '`', '"', '\'':
		return s[1 : len(s)-1]
	}
	return s
}

// stripHeadingRemnant removes a degenerate artifact of heading-style capture:
// a leading run of '#' markers or stray backticks left over from a heading
// line that was not fully trimmed upstream.
func stripHeadingRemnant(s string) string {
	s = strings.TrimLeft(s, "#")
	s = strings.Trim(s, "`")
	return strings.TrimSpace(s)
}

// isIllegalFilenameRune reports whether r is illegal in a filename component.
func isIllegalFilenameRune(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return false
}
