package domain

import "time"

// RunResult is the captured output of one interpreter invocation
type RunResult struct {
	TestFile TestFile
	Stdout   string
	Stderr   string
	ExitCode int
	Started  time.Time
	Finished time.Time
}

// RawRow holds the fields of one line of the result block
type RawRow []string

// Record is a RawRow with the 1-based line of the result block it starts on
type Record struct {
	Line   int
	Fields RawRow
}

// Category is the raw result token in the first field of a row
type Category string

const (
	CategoryPassed  Category = "Passed"
	CategoryFailed  Category = "Failed"
	CategorySkipped Category = "Skipped"
	// CategoryFixme is resolved to Passed or Failed by the row's last field
	CategoryFixme Category = "Fixme"
)

// ResultRow is a normalized result row
type ResultRow struct {
	Category Category
	Group    string
	Name     string
	Message  string // Empty in the compact layout
	Weight   int
	Extra    []string
	Elapsed  string // Seconds, unparsed
}

// Status is the unit test outcome reported to the grading platform
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)
