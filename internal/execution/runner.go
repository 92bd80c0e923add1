package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
	"unicode/utf8"

	"plgrader/internal/config"
	"plgrader/internal/domain"
)

// waitDelay bounds how long output pipes are drained after the process is killed
const waitDelay = time.Second

// ErrInvalidOutput is returned when the runner output is not valid UTF-8
var ErrInvalidOutput = errors.New("runner output is not valid UTF-8")

// Runner executes the interpreter for one test file inside the workspace
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes the interpreter for a single test file.
// A non-zero exit status is not an error: results are judged from the captured output.
func (r *Runner) Run(ctx context.Context, test domain.TestFile) (domain.RunResult, error) {
	result := domain.RunResult{TestFile: test}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	argv := r.config.Command(test.Path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.config.GetWorkspacePath()
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running test file", "file", test.Path, "argv", argv, "dir", cmd.Dir)
	result.Started = time.Now()
	err := cmd.Run()
	result.Finished = time.Now()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("running %s: %w", test.Path, ctxErr)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, fmt.Errorf("failed to run %s: %w", test.Path, err)
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if !utf8.Valid(stdout.Bytes()) {
		return result, fmt.Errorf("reading stdout of %s: %w", test.Path, ErrInvalidOutput)
	}
	if !utf8.Valid(stderr.Bytes()) {
		return result, fmt.Errorf("reading stderr of %s: %w", test.Path, ErrInvalidOutput)
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	slog.Debug("test file finished",
		"file", test.Path,
		"exit_code", result.ExitCode,
		"duration", result.Finished.Sub(result.Started).Round(time.Millisecond),
		"stderr_bytes", stderr.Len())
	return result, nil
}
