// Package workspace materializes the isolated directory the test runner works in.
package workspace

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"

	"plgrader/internal/config"
	"plgrader/internal/domain"
)

// Stager rebuilds the workspace from a submission and its tests
type Stager struct {
	root string
}

// NewStager creates a Stager for the configured workspace
func NewStager(cfg *config.Config) *Stager {
	return &Stager{root: cfg.GetWorkspacePath()}
}

// Reset deletes the previous workspace. A missing workspace is not an error.
func (s *Stager) Reset() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", s.root, err)
	}
	return nil
}

// Stage resets the workspace and copies the content tree, then the test tree, into it
func (s *Stager) Stage(req domain.SubmissionRequest) (*Staging, error) {
	if err := s.Reset(); err != nil {
		return nil, err
	}

	contentFiles, err := CopyTree(req.ContentRoot, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to stage content: %w", err)
	}
	testFiles, err := CopyTree(req.TestRoot, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to stage tests: %w", err)
	}

	return &Staging{
		Root:         s.root,
		ContentFiles: contentFiles,
		TestFiles:    testFiles,
	}, nil
}

// Staging lists the files copied into the workspace, relative to Root
type Staging struct {
	Root         string
	ContentFiles []string
	TestFiles    []string
}

// Files returns every staged file tagged with its provenance, content first
func (st *Staging) Files() []domain.WorkspaceFile {
	files := make([]domain.WorkspaceFile, 0, len(st.ContentFiles)+len(st.TestFiles))
	for _, p := range st.ContentFiles {
		files = append(files, domain.WorkspaceFile{Path: p, Provenance: domain.ProvenanceContent})
	}
	for _, p := range st.TestFiles {
		files = append(files, domain.WorkspaceFile{Path: p, Provenance: domain.ProvenanceTest})
	}
	return files
}

// Collisions returns each path staged from both trees exactly once, in content order
func (st *Staging) Collisions() []string {
	files := st.Files()
	tests := mapset.NewThreadUnsafeSet[string]()
	for _, f := range files {
		if f.Provenance == domain.ProvenanceTest {
			tests.Add(f.Path)
		}
	}

	reported := mapset.NewThreadUnsafeSet[string]()
	var collisions []string
	for _, f := range files {
		if f.Provenance == domain.ProvenanceContent && tests.Contains(f.Path) && reported.Add(f.Path) {
			collisions = append(collisions, f.Path)
		}
	}
	return collisions
}

// CollisionError returns a *domain.FileCollisionError, or nil when the trees do not overlap
func (st *Staging) CollisionError() error {
	if paths := st.Collisions(); len(paths) > 0 {
		return &domain.FileCollisionError{Paths: paths}
	}
	return nil
}
