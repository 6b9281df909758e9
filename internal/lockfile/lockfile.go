// Package lockfile provides a filesystem-backed advisory lock used to
// serialize checkout reconciliation across processes.
//
// Mutual exclusion comes from an exclusive flock on the open file handle,
// not from the file's existence. The lock file is created on first use and
// never deleted: a leftover file is benign, and deleting it on release races
// with another process that has already opened it.
package lockfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// pollInterval is how often a blocked Acquire retries the flock while
// waiting for the holder to release.
const pollInterval = 25 * time.Millisecond

// Lock is a held advisory lock. It is not reentrant; a single Lock must not
// be acquired twice.
type Lock struct {
	path string
	file *os.File
	noop bool
}

// Acquire opens (creating if needed) the file at path and takes an exclusive
// advisory lock on it, blocking until the lock is obtained or ctx is done.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock %s: %w", path, err)
	}

	// Non-blocking attempts in a poll loop rather than a blocking flock,
	// so acquisition honors ctx cancellation.
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &Lock{path: path, file: f}, nil
		}
		if err != unix.EWOULDBLOCK {
			f.Close()
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			f.Close()
			return nil, fmt.Errorf("waiting for lock %s: %w", path, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// Noop returns a lock that does nothing. Used when the caller guarantees
// single-writer access by other means.
func Noop() *Lock {
	return &Lock{noop: true}
}

// Release unlocks and closes the lock file. The file itself stays on disk.
// Releasing an already-released or noop lock is a no-op.
func (l *Lock) Release() error {
	if l.noop || l.file == nil {
		return nil
	}

	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", l.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close lock %s: %w", l.path, closeErr)
	}
	return nil
}

// Path returns the lock file path, or empty for a noop lock.
func (l *Lock) Path() string {
	return l.path
}
