package domain

// ErrorEntry is one problem reported to the student alongside the grade
type ErrorEntry struct {
	LineNo   int    `json:"lineNo"`
	ColumnNo int    `json:"columnNo"`
	FileName string `json:"fileName"`
	Message  string `json:"message,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// Hints shown to the student
const (
	HintRename       = "Please rename the following file: %s"
	HintRunLocally   = "Make sure your code works locally first"
	HintInternal     = "This shouldn't happen..."
	HintNoTestsRun   = "No tests were run."
	ZeroSuiteFileRef = "root"
)
