package fetch

import (
	"os"
	"path/filepath"

	"go.trai.ch/rv/internal/core/descriptor"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/zerr"
)

// parseMetadataFileAt reads and parses the package description file
// directly at root, with no archive-layout guessing.
func parseMetadataFileAt(root string) (domain.PackageRecord, error) {
	data, err := os.ReadFile(filepath.Join(root, "DESCRIPTION"))
	if err != nil {
		return domain.PackageRecord{}, zerr.Wrap(err, domain.ErrMetadataReadFailed.Error())
	}

	record, err := descriptor.Parse(string(data))
	if err != nil {
		return domain.PackageRecord{}, zerr.Wrap(err, domain.ErrMetadataReadFailed.Error())
	}
	return record, nil
}
