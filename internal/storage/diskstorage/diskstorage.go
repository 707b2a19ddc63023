// Package diskstorage stores uploaded byte blobs in a flat directory on the
// local filesystem. The directory is shared by all workers; name collisions
// are prevented upstream by the uniqueness token in the storage key, so no
// locking is taken here.
package diskstorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	dir string
}

func New(dir string) *DiskStorage {
	return &DiskStorage{dir: dir}
}

// Save writes r to dir/name, creating the directory if absent. A partial
// write is removed so a failed Save leaves no stray file behind.
func (s *DiskStorage) Save(name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir %q: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %q: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close file %q: %w", path, err)
	}
	return nil
}

// Remove deletes the blob at dir/name.
func (s *DiskStorage) Remove(name string) error {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file %q: %w", path, err)
	}
	return nil
}
