package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirStore persists each key as a "<key>.json" file in a folder.
//
// The folder stays human-readable, and git-friendly: the value is written
// as is, and a write is a full replacement done through a temporary file
// renamed over the previous one.
type DirStore struct {
	dir string
}

// OpenDir returns a store on folder dir, creating it if needed.
func OpenDir(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, errors.New("file store: missing folder")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store folder %q: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// filename returns the file holding key.
func (s *DirStore) filename(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *DirStore) Get(_ context.Context, key string) ([]byte, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return data, nil
}

func (s *DirStore) Put(_ context.Context, key string, value []byte) error {
	filename, err := s.filename(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary file for %q: %w", filename, err)
	}
	// the temporary file is gone after a successful rename.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("cannot replace %q: %w", filename, err)
	}
	return nil
}

// Close does nothing, every Put is already on disk.
func (s *DirStore) Close() error { return nil }
