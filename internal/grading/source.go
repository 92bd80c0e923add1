package grading

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"plgrader/internal/domain"
)

// ReadSources reads every file under root for the report's source echo.
// Unreadable files are skipped and reported together in the returned error.
func ReadSources(root string) ([]domain.SourceFile, error) {
	files := []domain.SourceFile{}
	var errs []error

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading source %s: %w", path, err))
			return nil
		}
		files = append(files, domain.SourceFile{
			Path:     path,
			Contents: strings.ToValidUTF8(string(data), "�"),
		})
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return files, errors.Join(errs...)
}
