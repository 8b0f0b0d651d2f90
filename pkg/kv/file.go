package kv

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// File stores one JSON document per key as a file under a directory.
// Writes go through a temp file and rename so a crashed write never
// leaves a half-written document behind.
type File struct {
	dir string
}

// NewFile creates the data directory if needed and returns the store.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("kv: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: creating data directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: reading %q: %w", key, err)
	}
	return raw, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("kv: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kv: writing %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: committing %q: %w", key, err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kv: deleting %q: %w", key, err)
	}
	return nil
}

func (f *File) path(key string) string {
	name := unsafeKeyChars.ReplaceAllStringFunc(key, func(s string) string {
		return "_" + hex.EncodeToString([]byte(s))
	})
	return filepath.Join(f.dir, name+".json")
}
