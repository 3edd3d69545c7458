//go:build linux || darwin || freebsd || openbsd || netbsd

package filelock

import (
	"os"

	"golang.org/x/sys/unix"
)

// acquire opens (creating if absent) and takes a blocking exclusive
// flock on path. The returned func releases the lock and closes the
// file descriptor; it never returns an error worth surfacing to the
// caller, since the lock is advisory and the process is about to move
// on regardless.
func acquire(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644) //nolint:gosec // lock path is derived from a trusted cache/clone directory, not user input
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		_ = f.Close()
	}, nil
}
