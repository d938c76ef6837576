package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/Aman-CERP/invsearch/internal/errors"
)

// FileLock is a cross-process advisory lock next to a data file.
// It keeps two interactive sessions from owning the same inventory.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates a lock for the data file at dataPath.
// The lock file is <dataPath>.lock.
func NewFileLock(dataPath string) *FileLock {
	lockPath := dataPath + ".lock"
	return &FileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// TryLock acquires the lock without blocking. It returns an
// ERR_205_FILE_LOCKED error when another process holds it.
func (l *FileLock) TryLock() error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create lock directory: %w", err)
		}
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return errors.New(errors.ErrCodeFileLocked,
			"inventory is already open in another session", nil).
			WithDetail("lock", l.path).
			WithSuggestion("Close the other session, or pass --no-lock if it is gone")
	}

	l.locked = true
	return nil
}

// Unlock releases the lock. The lock file is left in place so every
// session locks the same inode.
// It's safe to call Unlock multiple times or on an unlocked FileLock.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}

	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the path to the lock file.
func (l *FileLock) Path() string {
	return l.path
}

// IsLocked returns true if the lock is currently held.
func (l *FileLock) IsLocked() bool {
	return l.locked
}
