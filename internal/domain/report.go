package domain

// ReportType identifies the report schema for the grading platform
const ReportType = "arete"

// UnitTestReport is the outcome of a single test row
type UnitTestReport struct {
	Name                  string  `json:"name"`
	Weight                int     `json:"weight"`
	Status                Status  `json:"status"`
	TimeElapsed           float64 `json:"timeElapsed"` // Milliseconds, -1 when unknown
	ExceptionClass        string  `json:"exceptionClass,omitempty"`
	ExceptionMessage      string  `json:"exceptionMessage,omitempty"`
	PrintExceptionMessage string  `json:"printExceptionMessage"`
	PrintStackTrace       string  `json:"printStackTrace"`
}

// SuiteReport is the graded outcome of one test file
type SuiteReport struct {
	File        string           `json:"file"`
	Name        string           `json:"name"`
	StartDate   float64          `json:"startDate"` // Unix seconds
	EndDate     float64          `json:"endDate"`
	UnitTests   []UnitTestReport `json:"unitTests"`
	Grade       float64          `json:"grade"`
	PassedCount int              `json:"passedCount"`
}

// SourceFile echoes one submission file back to the platform
type SourceFile struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

// GradeReport is the complete grading response
type GradeReport struct {
	Type          string        `json:"type"`
	Files         []SourceFile  `json:"files"`
	Errors        []ErrorEntry  `json:"errors"`
	Style         *int          `json:"style,omitempty"`
	ConsoleOutput []string      `json:"consoleOutput"`
	TestSuites    []SuiteReport `json:"testSuites"`
	Percentage    float64       `json:"percentage"`
	TotalGrade    *int          `json:"totalGrade,omitempty"`
}

// NewGradeReport returns an empty report with non-nil collections
func NewGradeReport() *GradeReport {
	return &GradeReport{
		Type:          ReportType,
		Files:         []SourceFile{},
		Errors:        []ErrorEntry{},
		ConsoleOutput: []string{},
		TestSuites:    []SuiteReport{},
	}
}

// AddError records an anomaly and marks the report style as unclean
func (r *GradeReport) AddError(entry ErrorEntry) {
	r.Errors = append(r.Errors, entry)
	r.MarkStyle()
}

// MarkStyle sets the style flag to 0
func (r *GradeReport) MarkStyle() {
	zero := 0
	r.Style = &zero
}

// Clean reports whether no anomaly was recorded
func (r *GradeReport) Clean() bool {
	return r.Style == nil
}
