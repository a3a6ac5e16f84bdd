package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS is a filesystem-backed Store rooted at a single directory. Every name
// resolves strictly beneath the root; escaping paths are rejected.
type FS struct {
	root string
}

// NewFS creates the root directory if needed and returns a store over it.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("store: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute root directory.
func (f *FS) Root() string { return f.root }

func (f *FS) Put(name string, data []byte) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("store: create parents for %s: %w", name, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

func (f *FS) Get(name string) ([]byte, bool, error) {
	abs, err := f.resolve(name)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: read %s: %w", name, err)
	}
	return data, true, nil
}

func (f *FS) List(dir string) ([]string, error) {
	abs, err := f.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (f *FS) Reset() error {
	if err := os.RemoveAll(f.root); err != nil {
		return fmt.Errorf("store: reset root: %w", err)
	}
	if err := os.MkdirAll(f.root, 0o755); err != nil {
		return fmt.Errorf("store: recreate root: %w", err)
	}
	return nil
}

func (f *FS) resolve(name string) (string, error) {
	cleaned := normalize(name)
	abs := filepath.Clean(filepath.Join(f.root, filepath.FromSlash(cleaned)))
	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		return "", fmt.Errorf("store: resolve %q: %w", name, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("store: path %q escapes the root", name)
	}
	return abs, nil
}
