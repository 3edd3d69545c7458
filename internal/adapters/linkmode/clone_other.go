//go:build !linux

package linkmode

import "go.trai.ch/zerr"

// reflinkFile has no portable implementation outside Linux's FICLONE
// ioctl; the strategy fails immediately so the caller falls back to Copy.
func reflinkFile(_, _ string) error {
	return zerr.New("reflink clone is not supported on this platform")
}
