//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

const (
	winExclusiveLock   = 0x00000002
	winFailImmediately = 0x00000001
	retryInterval      = time.Millisecond
)

// lockFile polls LockFileEx instead of letting it block: a blocking
// LockFileEx pins the OS thread, which starves the bubbletea event
// loop while a second process holds the session.
func lockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	for {
		err := windows.LockFileEx(
			windows.Handle(f.Fd()),
			winExclusiveLock|winFailImmediately,
			0, 1, 0, // reserved, low byte count, high byte count
			ol,
		)
		if err == nil {
			return nil
		}
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		time.Sleep(retryInterval)
	}
}

func unlockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(
		windows.Handle(f.Fd()),
		0, 1, 0, // reserved, low byte count, high byte count
		ol,
	)
}
