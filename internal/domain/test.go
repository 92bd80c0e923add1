package domain

// SubmissionRequest is the grading input read from the request envelope
type SubmissionRequest struct {
	ContentRoot string `json:"contentRoot"`
	TestRoot    string `json:"testRoot"`
}

// Provenance tells which source tree a staged file was copied from
type Provenance string

const (
	ProvenanceContent Provenance = "content"
	ProvenanceTest    Provenance = "test"
)

// WorkspaceFile is a staged file, identified by its workspace relative path
type WorkspaceFile struct {
	Path       string
	Provenance Provenance
}

// TestFile is a staged file recognized as a test suite entry point
type TestFile struct {
	Path string // Workspace relative path, passed to the interpreter
	Name string // Path without the .pl suffix
	Code int    // 1-based grade_type_code, stable for the run
}
