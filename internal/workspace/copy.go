package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"plgrader/internal/domain"
)

// CopyTree copies every file below src into dst, merging into existing directories.
// It returns the copied files as paths relative to dst, in walk order.
// Failures do not stop the copy; they are returned together as *domain.AggregateCopyError.
func CopyTree(src, dst string) ([]string, error) {
	var files []string
	var failures []domain.CopyFailure

	copyDir(src, dst, "", &files, &failures)

	if len(failures) > 0 {
		return files, &domain.AggregateCopyError{Failures: failures}
	}
	return files, nil
}

func copyDir(src, dst, rel string, files *[]string, failures *[]domain.CopyFailure) {
	fail := func(s, d string, err error) {
		*failures = append(*failures, domain.CopyFailure{Source: s, Destination: d, Reason: err.Error()})
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		fail(src, dst, err)
		return
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		fail(src, dst, err)
		return
	}

	for _, entry := range entries {
		srcName := filepath.Join(src, entry.Name())
		dstName := filepath.Join(dst, entry.Name())
		relName := filepath.Join(rel, entry.Name())

		info, err := os.Stat(srcName)
		if err != nil {
			fail(srcName, dstName, err)
			continue
		}
		if info.IsDir() {
			copyDir(srcName, dstName, relName, files, failures)
			continue
		}
		if !info.Mode().IsRegular() {
			fail(srcName, dstName, fmt.Errorf("not a regular file: %s", info.Mode().Type()))
			continue
		}
		if err := copyFile(srcName, dstName, info); err != nil {
			fail(srcName, dstName, err)
			continue
		}
		*files = append(*files, relName)
	}

	if err := copyMetadata(src, dst); err != nil {
		fail(src, dst, err)
	}
}

// copyFile copies contents, permission bits and timestamps
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyMetadata copies directory permission bits and timestamps.
// Platforms that cannot set directory timestamps are not an error.
func copyMetadata(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil && !errors.Is(err, errors.ErrUnsupported) {
		return err
	}
	return nil
}
