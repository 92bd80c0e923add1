package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"plgrader/internal/domain"
)

// Storage persists and loads a grade report (e.g. for the summary and view commands)
type Storage interface {
	Save(report *domain.GradeReport) error
	Load() (*domain.GradeReport, error)
}

// Archive records every grading run for later auditing
type Archive interface {
	Record(ctx context.Context, entry ArchiveEntry) error
	Close() error
}

// ArchiveEntry is one archived grading run
type ArchiveEntry struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	Request   domain.SubmissionRequest
	Report    *domain.GradeReport
}

// NewArchiveEntry stamps a report with a fresh run id
func NewArchiveEntry(req domain.SubmissionRequest, report *domain.GradeReport) ArchiveEntry {
	return ArchiveEntry{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		Request:   req,
		Report:    report,
	}
}
