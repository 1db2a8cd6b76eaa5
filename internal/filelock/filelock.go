// Package filelock guards session file writes against concurrent
// priplot processes with an advisory lock on a sidecar lock file.
package filelock

import "os"

const lockFileMode = 0o600

// Lock is a held advisory lock. Release it when the write is done.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on the file at path,
// creating it if needed. Other processes block until Release.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{f: f}, nil
}

// Release drops the lock and closes the lock file.
func (l *Lock) Release() error {
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
