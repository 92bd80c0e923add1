package discovery

import (
	"path"
	"strings"

	"plgrader/internal/domain"
)

// Filter narrows test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps test files whose base name matches pattern.
// Supports wildcards like "test_pr1*" or "*lists*"; a pattern without wildcards is a substring match.
// The grade_type_code of kept files is not renumbered.
func (f *Filter) FilterByName(tests []domain.TestFile, pattern string) []domain.TestFile {
	if pattern == "" {
		return tests
	}

	var filtered []domain.TestFile
	for _, test := range tests {
		if matchName(path.Base(test.Path), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Loose fallback: every literal part must appear, in order
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}
