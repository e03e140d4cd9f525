package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FS keeps assets as files in a single directory.
type FS struct {
	dir     string
	baseURL string
}

// NewFS creates the directory if needed and returns a filesystem backend.
func NewFS(dir, baseURL string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("asset: create dir: %w", err)
	}
	return &FS{dir: dir, baseURL: baseURL}, nil
}

// Dir is the directory files are written to.
func (f *FS) Dir() string {
	return f.dir
}

func (f *FS) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key))
}

func (f *FS) Put(_ context.Context, key string, data []byte, _ string) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FS) Get(_ context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return file, err
}

func (f *FS) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(f.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f *FS) Size(_ context.Context, key string) (int64, error) {
	fi, err := os.Stat(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (f *FS) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FS) URL(key string) string {
	return joinURL(f.baseURL, key)
}
