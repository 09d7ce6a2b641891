package bundle

import (
	"os"
	"path/filepath"
	"strings"
)

// ignoreFileName is the per-directory rule file the bundler honors.
const ignoreFileName = ".gitignore"

// ruleSet is an ordered list of ignore rules. Rules are matched first to
// last against the slash-relative path; the first match wins. A rule matches
// when it appears anywhere in the path, which covers the common cases
// (directory names, extensions, exact files) without a full gitignore
// grammar.
type ruleSet []string

// Match reports whether relPath is excluded by the set.
func (r ruleSet) Match(relPath string) bool {
	for _, rule := range r {
		if strings.Contains(relPath, rule) {
			return true
		}
	}
	return false
}

// extend returns a new set with child rules appended after the parent's.
// Parent rules keep precedence because matching is first-wins.
func (r ruleSet) extend(child ruleSet) ruleSet {
	if len(child) == 0 {
		return r
	}
	merged := make(ruleSet, 0, len(r)+len(child))
	merged = append(merged, r...)
	merged = append(merged, child...)
	return merged
}

// loadIgnoreRules reads the rule file in dir, if present. Blank lines and
// comments are dropped. A missing file yields an empty set.
func loadIgnoreRules(dir string) ruleSet {
	content, err := os.ReadFile(filepath.Join(dir, ignoreFileName))
	if err != nil {
		return nil
	}

	var rules ruleSet
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}
