// Package lockfile implements the canonical lockfile codec (§4.F): a
// human-diffable YAML document with a hard schema-version check and no
// silent migration path.
package lockfile

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/rv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockfileStore = (*Codec)(nil)

// Codec implements ports.LockfileStore over a YAML document on disk.
type Codec struct{}

// New creates a Codec.
func New() *Codec {
	return &Codec{}
}

// Read decodes the lockfile at path. It performs no network I/O and
// rejects any schema version other than domain.LockfileSchemaVersion.
func (c *Codec) Read(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-supplied project state, not attacker input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	var doc documentDTO
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	if doc.SchemaVersion != domain.LockfileSchemaVersion {
		return nil, zerr.With(zerr.With(domain.ErrLockfileSchemaMismatch, "found", doc.SchemaVersion), "expected", domain.LockfileSchemaVersion)
	}

	l, err := fromDocument(doc)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return &l, nil
}

// Write serializes l canonically and writes it to path atomically.
func (c *Codec) Write(path string, l domain.Lockfile) error {
	data, err := yaml.Marshal(toDocument(l))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", path)
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error()), "path", path)
	}
	return nil
}

// atomicWriteFile writes data to a temp file beside path and renames it
// into place, avoiding a torn read of a concurrently-written lockfile.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lockfile-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
