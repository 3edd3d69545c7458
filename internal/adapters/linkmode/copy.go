// Package linkmode implements the four strategies for materializing a
// staged package directory into the library (§4.H "Link modes and
// auto-selection"), plus the selector that picks among them.
package linkmode

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkStrategy = (*Copy)(nil)

// Copy is the safest, slowest strategy: a plain recursive file copy. It
// is also the universal fallback every other strategy falls back to on
// runtime failure.
type Copy struct{}

// NewCopy creates a Copy strategy.
func NewCopy() *Copy {
	return &Copy{}
}

func (c *Copy) Mode() ports.LinkMode {
	return ports.LinkModeCopy
}

func (c *Copy) Materialize(srcDir, dstDir string) error {
	return copyTree(srcDir, dstDir)
}

// copyTree walks srcDir, recreating its structure and file contents
// under dstDir, preserving each file's permission bits.
func copyTree(srcDir, dstDir string) error {
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
		return copyFile(path, target, d)
	})
}

func copyFile(src, dst string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", dst)
	}

	in, err := os.Open(src) //nolint:gosec // path is derived from a walk of a trusted staging tree
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", dst)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkModeFailed.Error()), "path", dst)
	}
	return nil
}
