package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// testBlobStoreContract checks the behaviour every BlobStore must share.
func testBlobStoreContract(t *testing.T, newStore func(t *testing.T) BlobStore) {
	ctx := context.Background()
	const key = "users/u1/data.json"

	t.Run("get missing", func(t *testing.T) {
		_, err := newStore(t).Get(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		etag, err := s.Put(ctx, key, []byte(`{"a":1}`), nil)
		require.NoError(t, err)
		require.NotEmpty(t, etag)

		blob, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), blob.Body)
		assert.Equal(t, etag, blob.ETag)
	})

	t.Run("create only if absent", func(t *testing.T) {
		s := newStore(t)
		_, err := s.PutIfMatch(ctx, key, []byte("1"), nil, "")
		require.NoError(t, err)

		_, err = s.PutIfMatch(ctx, key, []byte("2"), nil, "")
		assert.ErrorIs(t, err, ErrPreconditionFailed)

		blob, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), blob.Body)
	})

	t.Run("if match", func(t *testing.T) {
		s := newStore(t)
		etag, err := s.Put(ctx, key, []byte("1"), nil)
		require.NoError(t, err)

		next, err := s.PutIfMatch(ctx, key, []byte("2"), nil, etag)
		require.NoError(t, err)
		assert.NotEqual(t, etag, next)

		// stale etag loses
		_, err = s.PutIfMatch(ctx, key, []byte("3"), nil, etag)
		assert.ErrorIs(t, err, ErrPreconditionFailed)

		blob, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), blob.Body)
	})

	t.Run("if match on missing key", func(t *testing.T) {
		_, err := newStore(t).PutIfMatch(ctx, key, []byte("1"), nil, `"nope"`)
		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})

	t.Run("head missing", func(t *testing.T) {
		_, err := newStore(t).Head(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("metadata follows every write", func(t *testing.T) {
		s := newStore(t)
		etag, err := s.Put(ctx, key, []byte("1"), Metadata{"last-sync": "one"})
		require.NoError(t, err)

		info, err := s.Head(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, etag, info.ETag)
		assert.Equal(t, Metadata{"last-sync": "one"}, info.Metadata)

		next, err := s.PutIfMatch(ctx, key, []byte("2"), Metadata{"last-sync": "two"}, etag)
		require.NoError(t, err)

		info, err = s.Head(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, next, info.ETag)
		assert.Equal(t, "two", info.Metadata["last-sync"])

		blob, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "two", blob.Metadata["last-sync"])

		// a losing conditional write leaves the metadata alone
		_, err = s.PutIfMatch(ctx, key, []byte("3"), Metadata{"last-sync": "three"}, etag)
		require.ErrorIs(t, err, ErrPreconditionFailed)
		info, err = s.Head(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "two", info.Metadata["last-sync"])
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Put(ctx, key, []byte("1"), nil)
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, key))
		require.NoError(t, s.Delete(ctx, key))

		_, err = s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
		_, err = s.Head(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("concurrent conditional writers", func(t *testing.T) {
		s := newStore(t)
		etag, err := s.Put(ctx, key, []byte("base"), nil)
		require.NoError(t, err)

		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := s.PutIfMatch(ctx, key, []byte{byte('a' + i)}, nil, etag); err == nil {
					wins.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestMemoryBlobStore(t *testing.T) {
	testBlobStoreContract(t, func(*testing.T) BlobStore {
		return NewMemoryBlobStore()
	})
}

func TestMemoryBlobStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBlobStore()

	body := []byte("abc")
	_, err := s.Put(ctx, "k", body, nil)
	require.NoError(t, err)
	body[0] = 'x'

	blob, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), blob.Body)
}

func TestMemoryBlobStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryBlobStore().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileBlobStore(t *testing.T) {
	testBlobStoreContract(t, func(t *testing.T) BlobStore {
		s, err := NewFileBlobStore(t.TempDir(), logger.Nop())
		require.NoError(t, err)
		return s
	})
}

func TestFileBlobStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileBlobStore(dir, logger.Nop())
	require.NoError(t, err)
	etag, err := s.Put(ctx, "users/u1/data.json", []byte("persisted"), nil)
	require.NoError(t, err)

	reopened, err := NewFileBlobStore(dir, logger.Nop())
	require.NoError(t, err)
	blob, err := reopened.Get(ctx, "users/u1/data.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), blob.Body)
	assert.Equal(t, etag, blob.ETag)
}

func TestFileBlobStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileBlobStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	for _, key := range []string{"", "../outside", "/etc/passwd", "users/../../x", "users/u1/data.json.meta"} {
		_, err := s.Put(ctx, key, []byte("x"), nil)
		assert.ErrorIs(t, err, ErrInvalidBlobKey, key)
	}
}

func TestFileBlobStore_HeadUsesSidecar(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileBlobStore(dir, logger.Nop())
	require.NoError(t, err)

	etag, err := s.Put(ctx, "users/u1/data.json", []byte("body"), Metadata{"last-sync": "x"})
	require.NoError(t, err)

	body := filepath.Join(dir, "users", "u1", "data.json")
	require.NoError(t, os.Chmod(body, 0o000))
	t.Cleanup(func() { _ = os.Chmod(body, 0o600) })

	info, err := s.Head(ctx, "users/u1/data.json")
	require.NoError(t, err)
	assert.Equal(t, etag, info.ETag)
	assert.Equal(t, "x", info.Metadata["last-sync"])

	require.NoError(t, os.Chmod(body, 0o600))
	require.NoError(t, s.Delete(ctx, "users/u1/data.json"))
	_, err = os.Stat(body + ".meta")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileBlobStore_HeadWithoutSidecar(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileBlobStore(dir, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "k"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k", "obj"), []byte("raw"), 0o600))

	info, err := s.Head(ctx, "k/obj")
	require.NoError(t, err)
	assert.NotEmpty(t, info.ETag)
	assert.Empty(t, info.Metadata)
}
