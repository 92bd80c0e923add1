package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSentinelNotFound matches any SentinelNotFoundError
var ErrSentinelNotFound = errors.New("sentinel not found in runner output")

// SentinelNotFoundError means the runner never printed its result marker
type SentinelNotFoundError struct {
	Sentinel string
}

func (e *SentinelNotFoundError) Error() string {
	return fmt.Sprintf("%q was not found in the tester output.\n", e.Sentinel)
}

func (e *SentinelNotFoundError) Is(target error) bool {
	return target == ErrSentinelNotFound
}

// MalformedRowError is returned when a row of the result block cannot be read
type MalformedRowError struct {
	Line   int // 1-based line within the result block, 0 if unknown
	Row    RawRow
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	var b strings.Builder
	b.WriteString("malformed result row")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if len(e.Row) > 0 {
		fmt.Fprintf(&b, " %q", strings.Join(e.Row, ","))
	}
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// CopyFailure is one failed copy during staging
type CopyFailure struct {
	Source      string
	Destination string
	Reason      string
}

// AggregateCopyError lists every copy failure of a staging attempt
type AggregateCopyError struct {
	Failures []CopyFailure
}

func (e *AggregateCopyError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s -> %s: %s", f.Source, f.Destination, f.Reason))
	}
	return fmt.Sprintf("failed to copy %d file(s): %s", len(e.Failures), strings.Join(parts, "; "))
}

// FileCollisionError lists workspace paths provided by both the content and the test tree
type FileCollisionError struct {
	Paths []string
}

func (e *FileCollisionError) Error() string {
	return fmt.Sprintf("content and test trees both provide: %s", strings.Join(e.Paths, ", "))
}
