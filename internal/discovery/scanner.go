package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"plgrader/internal/config"
	"plgrader/internal/domain"
)

// Scanner recognizes test suite entry points among workspace relative paths
type Scanner struct {
	pattern *regexp.Regexp
	suffix  string
}

// NewScanner creates a Scanner from the configured test file pattern
func NewScanner(cfg *config.Config) (*Scanner, error) {
	re, err := cfg.TestFileMatcher()
	if err != nil {
		return nil, err
	}
	return &Scanner{pattern: re, suffix: cfg.TestFileSuffix}, nil
}

// Match returns the test files among paths, keeping their order and numbering them from 1
func (s *Scanner) Match(paths []string) []domain.TestFile {
	var tests []domain.TestFile
	for _, p := range paths {
		rel := filepath.ToSlash(p)
		if !s.pattern.MatchString(rel) {
			continue
		}
		tests = append(tests, domain.TestFile{
			Path: rel,
			Name: strings.TrimSuffix(rel, s.suffix),
			Code: len(tests) + 1,
		})
	}
	return tests
}

// Scan walks root the way staging copies it and returns the test files it would run
func (s *Scanner) Scan(root string) ([]domain.TestFile, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Match(paths), nil
}
