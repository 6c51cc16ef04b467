package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iqtidar314/Dhaka-College-Results-Scraped/internal/catalog"
)

// FSStore serves result files from one flat directory.
type FSStore struct{ base string }

func NewFSStore(base string) *FSStore {
	if base == "" {
		base = "./public/results-file"
	}
	return &FSStore{base: base}
}

// Dir is the directory the store reads from.
func (s *FSStore) Dir() string { return s.base }

func (s *FSStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("read results dir %s: %w", s.base, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return catalog.ResultFiles(names), nil
}

func (s *FSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := catalog.CheckName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.base, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
