// Package logbook records benchmark progress to an append-only text file, so
// a long generation or aggregation pass can be inspected after the fact. The
// TUI tails it for its status panel.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileName is the conventional log file name next to the experiment tree.
const FileName = "gridbench.log"

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook appends timestamped lines to a single file. The zero-value-nil
// receiver is a no-op everywhere, so callers can run without a log.
type Logbook struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New creates a logbook writing to path, creating parent directories.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure dir: %w", err)
	}
	return &Logbook{path: path, now: time.Now}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) { l.append(LevelInfo, format, args...) }

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) { l.append(LevelWarn, format, args...) }

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) { l.append(LevelError, format, args...) }

func (l *Logbook) append(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	message := strings.TrimSpace(fmt.Sprintf(format, args...))
	fmt.Fprintf(file, "%s %-5s %s\n", l.now().UTC().Format(time.RFC3339), level, message)
}

// Tail returns up to n of the most recent entries and the total entry count.
func (l *Logbook) Tail(n int) ([]string, int) {
	if l == nil || n <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	total := len(lines)
	if total > n {
		lines = lines[total-n:]
	}
	return lines, total
}
