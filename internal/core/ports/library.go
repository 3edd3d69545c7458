package ports

import "go.trai.ch/rv/internal/core/domain"

// Library reads and mutates the installed project library: a directory
// per package, name-cased, with a readable metadata file identifying
// the installed version (§3 "Installed library").
type Library interface {
	// Read enumerates the current library state.
	Read(libraryPath string) (domain.LibraryState, error)

	// MetadataExists reports whether a valid metadata file exists under
	// libraryPath for name at exactly the given version, the core's only
	// post-install contract with the installer.
	MetadataExists(libraryPath, name string, version domain.Version) (bool, error)

	// Remove deletes the package directory for name from the library.
	Remove(libraryPath, name string) error
}

// OpenFileChecker reports whether a package directory has open file
// handles, guarding removal safety (§4.H "Removal safety").
type OpenFileChecker interface {
	IsOpen(packageDir string) (bool, error)
}
