package ui

import "plgrader/internal/domain"

// Viewer displays a grade report interactively
type Viewer interface {
	View(report *domain.GradeReport) error
}
