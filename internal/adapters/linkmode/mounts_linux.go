//go:build linux

package linkmode

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// linuxMountFilesystem returns the filesystem type of the mount point
// that owns path, per /proc/mounts, matching the longest mount-point
// prefix (the same approach `df` and `mount` use).
func linuxMountFilesystem(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	f, err := os.Open("/proc/mounts")
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	bestLen := -1
	bestType := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint, fsType := fields[1], fields[2]
		if !strings.HasPrefix(abs, mountPoint) {
			continue
		}
		if len(mountPoint) > bestLen {
			bestLen = len(mountPoint)
			bestType = fsType
		}
	}

	return bestType, bestLen >= 0
}
