//go:build windows

package filesystem

import (
	"os"

	"golang.org/x/sys/windows"
)

// Windows byte-range locks are mandatory, so the lock sits on a byte far past
// any real content to keep writes through other handles working.
const lockOffsetHigh = 0x7fffffff

// lockFile takes an exclusive lock on the file
func lockFile(file *os.File) error {
	ol := &windows.Overlapped{OffsetHigh: lockOffsetHigh}
	return windows.LockFileEx(windows.Handle(file.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol)
}

// unlockFile releases the lock on the file
func unlockFile(file *os.File) error {
	ol := &windows.Overlapped{OffsetHigh: lockOffsetHigh}
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, 1, 0, ol)
}
