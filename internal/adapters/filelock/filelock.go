// Package filelock provides a cross-process advisory lock keyed by a
// path on disk. It backs the two serialization points spec.md calls
// out explicitly: the repository-index cache-write path (§5) and the
// version-control clone cache (§4.D), both of which are shared across
// concurrently running rv processes.
package filelock

import (
	"os"
	"path/filepath"
)

// WithLock creates path's parent directory if needed, takes a blocking
// exclusive lock on path, runs fn, and releases the lock before
// returning. The lock file itself is never removed; only its content-free
// existence matters.
func WithLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	unlock, err := acquire(path)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}
