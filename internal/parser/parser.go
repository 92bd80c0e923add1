package parser

import "plgrader/internal/domain"

// Extractor locates the result block in runner output and splits it into records
type Extractor interface {
	Extract(stdout string) ([]domain.Record, error)
}
