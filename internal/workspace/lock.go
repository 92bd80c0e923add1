package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 100 * time.Millisecond

// Lock is an advisory lock that keeps concurrent graders off the same workspace
type Lock struct {
	flock *flock.Flock
	path  string
}

// NewLock creates a lock backed by the file at path
func NewLock(path string) *Lock {
	return &Lock{
		flock: flock.New(path),
		path:  path,
	}
}

// Acquire blocks until the lock is held or ctx is done
func (l *Lock) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	locked, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire workspace lock %s: %w", l.path, err)
	}
	if !locked {
		return fmt.Errorf("workspace lock %s is held by another grader", l.path)
	}
	return nil
}

// Release unlocks the lock file
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release workspace lock %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}
