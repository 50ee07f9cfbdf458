// Package file provides a durable Storage that keeps one file per item.
//
// Items are compressed with snappy and written atomically: data goes to a
// temporary file in the same directory which is then renamed over the item
// file, so a crash never leaves a half-written snapshot behind.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/unkn0wn-root/kvcache/internal/util"
	"github.com/unkn0wn-root/kvcache/storage"
)

const (
	filePrefix = "item-"
	fileSuffix = ".sz"
)

// Store keeps items under Dir.
type Store struct {
	dir string
}

var _ storage.Storage = (*Store)(nil)

// DefaultDir returns the per-user cache directory used when no directory is given.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user cache dir: %w", err)
	}
	return filepath.Join(base, "kvcache"), nil
}

// Open returns a Store rooted at dir, creating it if needed.
// An empty dir selects DefaultDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory items are stored in.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, util.HashKey(filePrefix, key)+fileSuffix)
}

func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	compressed, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return "", false, fmt.Errorf("cannot decompress %q: %w: %w", key, storage.ErrCorrupt, err)
	}
	return string(data), true, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(s.dir, "kvcache.tmp.*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file in %q: %w", s.dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(snappy.Encode(nil, []byte(value))); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("cannot write %q: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("cannot close temporary file %q: %w", tmpPath, err)
	}
	dst := s.path(key)
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("cannot rename %q to %q: %w", tmpPath, dst, err)
	}
	return nil
}

func (s *Store) Close(context.Context) error { return nil }
