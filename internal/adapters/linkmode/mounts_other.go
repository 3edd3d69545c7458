//go:build !linux

package linkmode

func linuxMountFilesystem(_ string) (string, bool) {
	return "", false
}
