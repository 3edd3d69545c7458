package linkmode

import (
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkStrategy = (*Hardlink)(nil)

// Hardlink hard-links each staged file into the library. It requires
// srcDir and dstDir to reside on the same filesystem; any failure
// (typically EXDEV) is left to the caller's copy fallback.
type Hardlink struct{}

// NewHardlink creates a Hardlink strategy.
func NewHardlink() *Hardlink {
	return &Hardlink{}
}

func (h *Hardlink) Mode() ports.LinkMode {
	return ports.LinkModeHardlink
}

func (h *Hardlink) Materialize(srcDir, dstDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstDir, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", target)
		}
		if err := os.Link(path, target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", target)
		}
		return nil
	})
}
