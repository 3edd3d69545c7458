package linkmode

import (
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkStrategy = (*Clone)(nil)

// Clone materializes each file with a copy-on-write reflink where the
// underlying filesystem supports it (§4.H "used when filesystem supports
// reflinks"). Any file the platform or filesystem can't reflink fails
// this strategy outright; the caller falls back to Copy.
type Clone struct{}

// NewClone creates a Clone strategy.
func NewClone() *Clone {
	return &Clone{}
}

func (c *Clone) Mode() ports.LinkMode {
	return ports.LinkModeClone
}

func (c *Clone) Materialize(srcDir, dstDir string) error {
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
		if err := reflinkFile(path, target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", target)
		}
		return nil
	})
}
