package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Backend loads input files and persists output files by file name.
type Backend interface {
	Load(name string) ([]*Record, error)
	Persist(name string, records []*Record) error
}

// DirBackend keeps each file as "<lowercase name>.dat" inside Dir, one
// record per line.
type DirBackend struct {
	Dir string
}

// Path returns where the named file lives.
func (b DirBackend) Path(name string) string {
	return filepath.Join(b.Dir, strings.ToLower(name)+".dat")
}

// Load reads all records of a file. Blank lines are skipped.
func (b DirBackend) Load(name string) ([]*Record, error) {
	path := b.Path(name)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*Record

	reader := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if raw == "" && err != nil {
			break
		}

		lineNo++
		line := strings.TrimSpace(raw)
		if line != "" {
			r, malformed := ParseLine(line)
			for _, m := range malformed {
				slog.Warn("Malformed field", "Path", path, "Line", lineNo, "Field", m)
			}

			records = append(records, r)
		}

		if err != nil {
			break
		}
	}

	return records, nil
}

// Persist overwrites a file with the given records.
func (b DirBackend) Persist(name string, records []*Record) error {
	path := b.Path(name)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			f.Close()
			return err
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// MemBackend keeps files in memory. It is safe for concurrent use.
type MemBackend struct {
	mu        sync.Mutex
	files     map[string][]*Record
	persisted map[string][]*Record
}

// NewMemBackend creates an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{
		files:     make(map[string][]*Record),
		persisted: make(map[string][]*Record),
	}
}

// Put stores the records later loads of name return.
func (b *MemBackend) Put(name string, records ...*Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.files[strings.ToLower(name)] = cloneAll(records)
}

// Load returns copies of the records stored under name.
func (b *MemBackend) Load(name string) ([]*Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, ok := b.files[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}

	return cloneAll(records), nil
}

// Persist stores records under name. Persisted files can be loaded again.
func (b *MemBackend) Persist(name string, records []*Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(name)
	b.persisted[key] = cloneAll(records)
	b.files[key] = cloneAll(records)

	return nil
}

// Persisted returns what was last persisted under name.
func (b *MemBackend) Persisted(name string) ([]*Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, ok := b.persisted[strings.ToLower(name)]
	return cloneAll(records), ok
}

func cloneAll(records []*Record) []*Record {
	if records == nil {
		return nil
	}

	out := make([]*Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}

	return out
}
