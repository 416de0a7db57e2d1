package documents

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fsBlobStore keeps blobs in a flat directory. It is the default when no
// MinIO endpoint is configured; presigned URLs degrade to file:// paths.
type fsBlobStore struct {
	dir string
}

func NewFSBlobStore(dir string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir %s: %w", dir, err)
	}
	return &fsBlobStore{dir: dir}, nil
}

// path rejects object names that would escape the blob directory.
func (f *fsBlobStore) path(objectName string) (string, error) {
	clean := filepath.Base(filepath.Clean(objectName))
	if clean == "." || clean == ".." || strings.ContainsAny(clean, `/\`) {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}
	return filepath.Join(f.dir, clean), nil
}

func (f *fsBlobStore) Put(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	p, err := f.path(objectName)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (f *fsBlobStore) Get(_ context.Context, objectName string) (io.ReadCloser, error) {
	p, err := f.path(objectName)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (f *fsBlobStore) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	p, err := f.path(objectName)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}

func (f *fsBlobStore) Delete(_ context.Context, objectName string) error {
	p, err := f.path(objectName)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *fsBlobStore) EnsureBucket(_ context.Context) error {
	return os.MkdirAll(f.dir, 0o755)
}
