//go:build linux || darwin || freebsd || openbsd || netbsd

package library

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// isLocked attempts a non-blocking exclusive flock on path, creating it
// if absent. EWOULDBLOCK means another process holds the lock; any other
// stat/open failure (including a directory that no longer exists) is
// reported as not locked, since a removed package cannot be "open".
func isLocked(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644) //nolint:gosec // sentinel path is derived from the library layout, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		return false, nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) {
		return true, nil
	}
	return false, err
}
