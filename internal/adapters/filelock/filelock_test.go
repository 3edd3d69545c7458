package filelock_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/rv/internal/adapters/filelock"
)

func TestWithLock_SerializesConcurrentCallers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.lock")

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := filelock.WithLock(path, func() error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxActive, 1, "WithLock must never let two callers run concurrently")
}

func TestWithLock_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "cache.lock")

	err := filelock.WithLock(path, func() error { return nil })
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Dir(path))
	assert.NoError(t, statErr)
}

func TestWithLock_PropagatesCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.lock")

	err := filelock.WithLock(path, func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
