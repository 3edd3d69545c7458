package repodb

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rv/internal/adapters/filelock"
	"go.trai.ch/rv/internal/core/domain"
	"go.trai.ch/zerr"
)

// diskCache persists domain.CacheEntry values under cacheDir, one file
// per repository/platform/distribution key, encoded with encoding/gob
// for a compact binary representation (§4.C).
type diskCache struct {
	dir string
}

func newDiskCache(dir string) *diskCache {
	return &diskCache{dir: dir}
}

func (c *diskCache) path(key domain.CacheKey) string {
	h := xxhash.New()
	_, _ = h.Write([]byte(key.RepoURL))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.PlatformVersion))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.DistributionTag))
	return filepath.Join(c.dir, strconv.FormatUint(h.Sum64(), 16)+".gob")
}

func (c *diskCache) load(key domain.CacheKey) (domain.CacheEntry, error) {
	//nolint:gosec // path is derived from a hash of trusted inputs under a fixed directory
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CacheEntry{}, domain.ErrIndexCacheReadFailed
		}
		return domain.CacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	var entry domain.CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return domain.CacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}
	return entry, nil
}

// clear deletes the entire cache directory. Safe to call when it does
// not exist yet.
func (c *diskCache) clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}
	return nil
}

// save writes entry to disk under an exclusive filesystem lock (§5 "a
// filesystem advisory lock guards the cache-write path"), so two rv
// processes racing to refresh the same repository index never
// interleave their temp-file-then-rename sequences.
func (c *diskCache) save(key domain.CacheKey, entry domain.CacheEntry) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	path := c.path(key)
	err := filelock.WithLock(path+".lock", func() error {
		return atomicWriteFile(path, buf.Bytes())
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}
	return nil
}

// atomicWriteFile writes data to path by writing a temp file in the same
// directory and renaming it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "repodb-cache-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
