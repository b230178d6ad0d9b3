package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps one JSON file per bucket under a data directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) LoadBucket(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bucket %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) SaveBucket(_ context.Context, name string, data []byte) error {
	if err := afero.WriteFile(s.fs, s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write bucket %s: %w", name, err)
	}
	return nil
}
