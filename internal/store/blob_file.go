package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

// fileBlobStore persists every object as a file under a root directory. The
// object key, split on "/", is the relative path of the file.
//
// ETags are content hashes computed on read, so conditional writes are only
// atomic within one process. Run a single server instance per directory.
// Each object has a sidecar file (metaSuffix) with its ETag and metadata,
// which Head reads instead of the body.
type fileBlobStore struct {
	root   string
	mu     sync.Mutex
	logger *logger.Logger
}

// ErrInvalidBlobKey is returned when a key would escape the root directory
// or collide with a sidecar file.
var ErrInvalidBlobKey = errors.New("invalid blob key")

const metaSuffix = ".meta"

type fileBlobMeta struct {
	ETag     string   `json:"etag"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewFileBlobStore creates root if necessary and returns a [BlobStore]
// rooted at it.
func NewFileBlobStore(root string, log *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		log.Err(err).Str("func", "NewFileBlobStore").Str("root", root).Msg("error creating blob directory")
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	return &fileBlobStore{root: root, logger: log}, nil
}

func (f *fileBlobStore) Get(ctx context.Context, key string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	path, err := f.path(key)
	if err != nil {
		return Blob{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := f.readLocked(path)
	if err != nil {
		return Blob{}, err
	}
	if meta, err := f.readMetaLocked(path); err == nil && meta.ETag == blob.ETag {
		blob.Metadata = meta.Metadata
	}
	return blob, nil
}

func (f *fileBlobStore) Head(ctx context.Context, key string) (BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return BlobInfo{}, err
	}

	path, err := f.path(key)
	if err != nil {
		return BlobInfo{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	meta, err := f.readMetaLocked(path)
	if err == nil {
		return BlobInfo{ETag: meta.ETag, Metadata: meta.Metadata}, nil
	}

	// objects placed in the directory by hand have no sidecar
	blob, err := f.readLocked(path)
	if err != nil {
		return BlobInfo{}, err
	}
	return BlobInfo{ETag: blob.ETag}, nil
}

func (f *fileBlobStore) Put(ctx context.Context, key string, body []byte, meta Metadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.path(key)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writeLocked(path, body, meta)
}

func (f *fileBlobStore) PutIfMatch(ctx context.Context, key string, body []byte, meta Metadata, etag string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.path(key)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.readLocked(path)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		if etag != "" {
			return "", ErrPreconditionFailed
		}
	case err != nil:
		return "", err
	case etag == "" || current.ETag != etag:
		return "", ErrPreconditionFailed
	}

	return f.writeLocked(path, body, meta)
}

func (f *fileBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting blob %q: %w", key, err)
	}
	if err = os.Remove(path + metaSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting blob metadata %q: %w", key, err)
	}
	return nil
}

func (f *fileBlobStore) path(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) || strings.HasSuffix(key, metaSuffix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlobKey, key)
	}
	return filepath.Join(f.root, rel), nil
}

func (f *fileBlobStore) readLocked(path string) (Blob, error) {
	body, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Blob{}, ErrBlobNotFound
	}
	if err != nil {
		f.logger.Err(err).Str("func", "fileBlobStore.readLocked").Str("path", path).Msg("error reading blob")
		return Blob{}, fmt.Errorf("error reading blob: %w", err)
	}

	return Blob{Body: body, ETag: utils.ContentETag(body)}, nil
}

// writeLocked stores body and then its sidecar. Get ignores a sidecar whose
// ETag does not match the body, so a crash between the two writes only
// loses metadata.
func (f *fileBlobStore) writeLocked(path string, body []byte, meta Metadata) (string, error) {
	etag := utils.ContentETag(body)

	if err := f.replaceFileLocked(path, body); err != nil {
		return "", err
	}

	sidecar, err := json.Marshal(fileBlobMeta{ETag: etag, Metadata: meta})
	if err != nil {
		return "", fmt.Errorf("error encoding blob metadata: %w", err)
	}
	if err = f.replaceFileLocked(path+metaSuffix, sidecar); err != nil {
		return "", err
	}

	return etag, nil
}

func (f *fileBlobStore) readMetaLocked(path string) (fileBlobMeta, error) {
	raw, err := os.ReadFile(path + metaSuffix)
	if err != nil {
		return fileBlobMeta{}, err
	}

	var meta fileBlobMeta
	if err = json.Unmarshal(raw, &meta); err != nil {
		f.logger.Err(err).Str("func", "fileBlobStore.readMetaLocked").Str("path", path).Msg("corrupt blob metadata")
		return fileBlobMeta{}, err
	}
	return meta, nil
}

// replaceFileLocked writes through a temp file and a rename so readers never
// see a partially written file.
func (f *fileBlobStore) replaceFileLocked(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*")
	if err != nil {
		return fmt.Errorf("error creating temp blob: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing blob: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		f.logger.Err(err).Str("func", "fileBlobStore.replaceFileLocked").Str("path", path).Msg("error renaming blob")
		return fmt.Errorf("error storing blob: %w", err)
	}

	return nil
}
