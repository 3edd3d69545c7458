package ports

import "go.trai.ch/rv/internal/core/domain"

// LockfileStore reads and writes the canonical lockfile representation
// (§4.F). Reading never performs network I/O.
type LockfileStore interface {
	Read(path string) (*domain.Lockfile, error)
	Write(path string, l domain.Lockfile) error
}
