// Package store abstracts the directory tree the benchmark uses as its
// database. The generator and the aggregator only see this interface, so
// tests can run against the in-memory implementation while production uses
// the filesystem.
package store

import (
	"sort"
	"strings"
	"sync"
)

// Store is a narrow document store over a rooted tree. Names are
// slash-separated paths relative to the root.
type Store interface {
	// Put writes a document, creating parents as needed.
	Put(name string, data []byte) error
	// Get reads a document. An absent document is (nil, false, nil),
	// not an error.
	Get(name string) ([]byte, bool, error)
	// List returns the sorted immediate children of a directory. An
	// absent directory lists as empty.
	List(dir string) ([]string, error)
	// Reset removes everything under the root. Destructive and
	// non-incremental: callers invoke it exactly when they mean it.
	Reset() error
}

// Memory is an in-memory Store for tests.
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: map[string][]byte{}}
}

func (m *Memory) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.docs[normalize(name)] = buf
	return nil
}

func (m *Memory) Get(name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[normalize(name)]
	if !ok {
		return nil, false, nil
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, true, nil
}

func (m *Memory) List(dir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := normalize(dir)
	if prefix != "" {
		prefix += "/"
	}
	seen := map[string]struct{}{}
	for name := range m.docs {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		child, _, _ := strings.Cut(rest, "/")
		if child != "" {
			seen[child] = struct{}{}
		}
	}
	children := make([]string, 0, len(seen))
	for child := range seen {
		children = append(children, child)
	}
	sort.Strings(children)
	return children, nil
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = map[string][]byte{}
	return nil
}

func normalize(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = strings.TrimPrefix(name, "./")
	return strings.Trim(name, "/")
}
