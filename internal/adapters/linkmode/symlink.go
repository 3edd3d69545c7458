package linkmode

import (
	"os"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkStrategy = (*Symlink)(nil)

// Symlink links the library entry directly to the staging (or shared
// cache) directory, avoiding a copy on network filesystems where
// reflinks and hardlinks are unreliable (§4.H).
type Symlink struct{}

// NewSymlink creates a Symlink strategy.
func NewSymlink() *Symlink {
	return &Symlink{}
}

func (s *Symlink) Mode() ports.LinkMode {
	return ports.LinkModeSymlink
}

func (s *Symlink) Materialize(srcDir, dstDir string) error {
	if err := os.Symlink(srcDir, dstDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", dstDir)
	}
	return nil
}
