package lib

import (
	"os"
	"path"
)

// BlobStore is the media storage collaborator. The default writes to a
// local directory; tests swap in an in-memory implementation.
type BlobStore interface {
	Put(name string, data []byte) (string, error)
}

type DiskStore struct {
	Dir string
}

func (s *DiskStore) Put(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := path.Join(s.Dir, name)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", err
	}
	return filePath, nil
}

var blobStore BlobStore

func GetBlobStore() BlobStore {
	if blobStore != nil {
		return blobStore
	}
	blobStore = &DiskStore{Dir: mediaDir()}
	return blobStore
}

// NewBlobStore replaces the shared store, used by tests.
func NewBlobStore(s BlobStore) BlobStore {
	blobStore = s
	return blobStore
}

func mediaDir() string {
	dir := os.Getenv("MEDIA_DIR")
	if dir == "" {
		dir = "media"
	}
	return dir
}
