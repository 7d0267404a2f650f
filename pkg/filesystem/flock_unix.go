//go:build unix

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an exclusive lock on the file
func lockFile(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX)
}

// unlockFile releases the lock on the file
func unlockFile(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}
