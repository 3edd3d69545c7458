package linkmode

import (
	"runtime"
	"strings"

	"go.trai.ch/rv/internal/core/ports"
)

// Select applies the effective-mode priority order (§4.H "Selection
// order"): an explicit override wins outright; failing that, a detected
// network filesystem forces symlink; failing that, a per-OS default.
func Select(override ports.LinkMode, libraryPath string) ports.LinkStrategy {
	if strategy, ok := byMode(override); ok {
		return strategy
	}
	if isNetworkFilesystem(libraryPath) {
		return NewSymlink()
	}
	return defaultForOS()
}

func byMode(mode ports.LinkMode) (ports.LinkStrategy, bool) {
	switch mode {
	case ports.LinkModeClone:
		return NewClone(), true
	case ports.LinkModeHardlink:
		return NewHardlink(), true
	case ports.LinkModeSymlink:
		return NewSymlink(), true
	case ports.LinkModeCopy:
		return NewCopy(), true
	default:
		return nil, false
	}
}

// defaultForOS picks clone on a reflink-capable default filesystem,
// else hardlink on local Unix, else copy.
func defaultForOS() ports.LinkStrategy {
	switch runtime.GOOS {
	case "linux":
		return NewClone()
	case "darwin", "freebsd", "openbsd", "netbsd":
		return NewHardlink()
	default:
		return NewCopy()
	}
}

// isNetworkFilesystem applies a coarse heuristic against the mount table
// on platforms that expose one; unsupported platforms report false and
// fall through to the per-OS default.
func isNetworkFilesystem(path string) bool {
	if runtime.GOOS != "linux" {
		return false
	}
	fsType, ok := linuxMountFilesystem(path)
	if !ok {
		return false
	}
	switch strings.ToLower(fsType) {
	case "nfs", "nfs4", "cifs", "smb", "smb3", "9p", "afs":
		return true
	default:
		return false
	}
}
