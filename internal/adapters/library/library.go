// Package library reads and mutates the installed project library: a
// directory per package, each holding a metadata file the installer
// promises to leave behind (§3 "Installed library").
package library

import (
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/descriptor"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Library = (*Library)(nil)

// Library implements ports.Library against a plain filesystem directory.
type Library struct{}

// New creates a Library.
func New() *Library {
	return &Library{}
}

// Read enumerates the library directory, parsing each entry's metadata
// file into an InstalledPackage. A subdirectory with no readable metadata
// file is skipped rather than failing the whole read, matching the
// descriptor parser's per-record tolerance (§4.B).
func (l *Library) Read(libraryPath string) (domain.LibraryState, error) {
	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewLibraryState(nil), nil
		}
		return domain.LibraryState{}, zerr.With(zerr.Wrap(err, domain.ErrLibraryReadFailed.Error()), "path", libraryPath)
	}

	var pkgs []domain.InstalledPackage
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(libraryPath, e.Name())

		record, ok := readMetadata(dir)
		if !ok {
			continue
		}

		pkgs = append(pkgs, domain.InstalledPackage{
			Name:              record.Name,
			Version:           record.Version,
			SourceFingerprint: readFingerprint(dir),
			Builtin:           false,
		})
	}

	return domain.NewLibraryState(pkgs), nil
}

// MetadataExists reports whether a valid metadata file exists at
// libraryPath for name at exactly the given version, the core's only
// post-install contract with the installer (§3).
func (l *Library) MetadataExists(libraryPath, name string, version domain.Version) (bool, error) {
	dir := filepath.Join(libraryPath, name)
	record, ok := readMetadata(dir)
	if !ok {
		return false, nil
	}
	return record.Version.Equal(version), nil
}

// Remove deletes name's package directory from the library.
func (l *Library) Remove(libraryPath, name string) error {
	dir := filepath.Join(libraryPath, name)
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemovalRefused.Error()), "name", name)
	}
	return nil
}

func readMetadata(dir string) (domain.PackageRecord, bool) {
	data, err := os.ReadFile(filepath.Join(dir, domain.MetadataFileName))
	if err != nil {
		return domain.PackageRecord{}, false
	}
	record, err := descriptor.Parse(string(data))
	if err != nil {
		return domain.PackageRecord{}, false
	}
	return record, true
}

func readFingerprint(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, domain.FingerprintFileName))
	if err != nil {
		return ""
	}
	return string(data)
}
