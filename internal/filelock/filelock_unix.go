//go:build !windows

package filelock

import (
	"os"
	"syscall"
)

// flock gives process-scoped locks, so two priplot instances in one
// process would not exclude each other. That case does not arise: the
// TUI owns the session for the lifetime of the process.
func lockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
