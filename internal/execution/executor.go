package execution

import (
	"context"

	"plgrader/internal/domain"
)

// Executor runs a single test file and captures its output
type Executor interface {
	Run(ctx context.Context, test domain.TestFile) (domain.RunResult, error)
}
