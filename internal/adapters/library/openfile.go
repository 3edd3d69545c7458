package library

import (
	"path/filepath"

	"go.trai.ch/rv/internal/core/ports"
)

var _ ports.OpenFileChecker = (*OpenFileChecker)(nil)

// OpenFileChecker guards removal safety (§4.H "Removal safety") with a
// best-effort advisory check: it tries to take an exclusive lock on a
// sentinel file inside the package directory. A process holding the
// package open via the same advisory-lock convention blocks the check;
// nothing stronger is portable across platforms without an external tool.
type OpenFileChecker struct{}

// NewOpenFileChecker creates an OpenFileChecker.
func NewOpenFileChecker() *OpenFileChecker {
	return &OpenFileChecker{}
}

const sentinelFileName = ".rv-lock"

// IsOpen reports whether packageDir appears to be held open by another
// process. A missing directory is never open.
func (c *OpenFileChecker) IsOpen(packageDir string) (bool, error) {
	return isLocked(filepath.Join(packageDir, sentinelFileName))
}
