package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/baaaaaaaka/mysh/internal/fsutil"
)

const DefaultFileName = ".mysh_history"

// File is the plain-text persistence for a Store: one entry per line,
// oldest first. Embedded newlines are not escaped, so an entry containing
// one comes back as several entries.
type File struct {
	path    string
	maxLine int
	lock    *flock.Flock
}

// NewFile returns a history file at path. Lines longer than maxLine-1
// bytes are dropped on load; maxLine <= 0 disables the check.
func NewFile(path string, maxLine int) *File {
	return &File{
		path:    path,
		maxLine: maxLine,
		lock:    flock.New(path + ".lock"),
	}
}

func (f *File) Path() string { return f.path }

// ReadAll returns the non-empty lines of the file. A missing file is
// treated as empty.
func (f *File) ReadAll() ([]string, error) {
	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock history: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	fh, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer fh.Close()

	var lines []string
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if f.maxLine > 0 && len(line) >= f.maxLine {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return lines, nil
}

// Load appends every line of the file to s, oldest first, so sequence
// numbers restart from whatever s already holds. It returns the number of
// lines read.
func (f *File) Load(s *Store) (int, error) {
	lines, err := f.ReadAll()
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		s.Append(line)
	}
	return len(lines), nil
}

// Save overwrites the file with the live entries of s, oldest first.
func (f *File) Save(s *Store) error {
	var buf bytes.Buffer
	for _, e := range s.Entries() {
		buf.WriteString(e.Text)
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	if err := fsutil.WriteFileAtomic(f.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
