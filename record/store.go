package record

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrNotRegistered is returned for a letter no INPUT or OUTPUT declared.
	ErrNotRegistered = errors.New("file not registered")
	// ErrNoCurrentRecord is returned when a file has no current record.
	ErrNoCurrentRecord = errors.New("no current item")
	// ErrNoSuchField is returned when the current record lacks a field.
	ErrNoSuchField = errors.New("field not in current item")
	// ErrNotOutput is returned when writing to a file not opened for output.
	ErrNotOutput = errors.New("file not registered as output")
)

// Kind tells how a file came to exist.
type Kind int

// File kinds.
const (
	KindInput Kind = iota
	KindOutput
	// KindScratch files are created by writing a field to an unregistered
	// letter. They hold a current record and nothing else, which makes
	// them usable as working storage.
	KindScratch
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "INPUT"
	case KindOutput:
		return "OUTPUT"
	default:
		return "SCRATCH"
	}
}

// File is the state of one lettered logical file.
type File struct {
	Letter string
	Name   string
	Kind   Kind

	records []*Record
	cursor  int
	current *Record
	eod     bool

	out     []*Record
	printer bool
	closed  bool
}

// Current returns the current record.
func (f *File) Current() (*Record, bool) {
	return f.current, f.current != nil
}

// EndOfData reports whether a read went past the last record.
func (f *File) EndOfData() bool {
	return f.eod
}

// Records returns the number of loaded records.
func (f *File) Records() int {
	return len(f.records)
}

// Position returns the index of the next record to be read.
func (f *File) Position() int {
	return f.cursor
}

// Output returns the records written so far.
func (f *File) Output() []*Record {
	return f.out
}

// Printer reports whether the file is listed on the High Speed Printer.
func (f *File) Printer() bool {
	return f.printer
}

// Closed reports whether the file was closed out.
func (f *File) Closed() bool {
	return f.closed
}

// Store owns the lettered files of one run.
type Store struct {
	backend Backend
	printer io.Writer
	lenient bool

	files   map[string]*File
	letters []string
}

// Register creates or resets the file bound to letter. Input files load
// their records from the backend.
func (s *Store) Register(letter, name string, output bool) error {
	f := &File{Letter: letter, Name: name, Kind: KindInput}
	if output {
		f.Kind = KindOutput
	}

	if _, ok := s.files[letter]; !ok {
		s.letters = append(s.letters, letter)
	}
	s.files[letter] = f

	if output {
		return nil
	}

	records, err := s.backend.Load(name)
	if err != nil {
		if s.lenient {
			slog.Error("Failed to load file, continuing empty",
				"File", letter, "Name", name, "Error", err)
			return nil
		}

		return fmt.Errorf("failed to load file %s (%s): %w", letter, name, err)
	}

	f.records = records
	slog.Debug("Loaded file", "File", letter, "Name", name, "Records", len(records))

	return nil
}

// File returns the file bound to letter.
func (s *Store) File(letter string) (*File, bool) {
	f, ok := s.files[normalize(letter)]
	return f, ok
}

// Letters returns the known letters in registration order.
func (s *Store) Letters() []string {
	return append([]string(nil), s.letters...)
}

func (s *Store) registered(letter string) (*File, error) {
	f, ok := s.files[normalize(letter)]
	if !ok || f.Kind == KindScratch {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, letter)
	}

	return f, nil
}

// ReadNext advances the cursor of a file. It returns false once the file is
// exhausted, which also raises the end-of-data flag.
func (s *Store) ReadNext(letter string) (*Record, bool, error) {
	f, err := s.registered(letter)
	if err != nil {
		return nil, false, err
	}

	if f.cursor >= len(f.records) {
		f.eod = true
		return nil, false, nil
	}

	f.current = f.records[f.cursor]
	f.cursor++

	return f.current, true, nil
}

// Current returns the current record of a file.
func (s *Store) Current(letter string) (*Record, bool) {
	f, ok := s.files[normalize(letter)]
	if !ok {
		return nil, false
	}

	return f.Current()
}

// GetField reads a field of the current record of a file.
func (s *Store) GetField(letter, field string) (Value, error) {
	f, ok := s.files[normalize(letter)]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrNotRegistered, letter)
	}

	if f.current == nil {
		return Value{}, fmt.Errorf("%w for file %s", ErrNoCurrentRecord, letter)
	}

	v, ok := f.current.Get(field)
	if !ok {
		return Value{}, fmt.Errorf("%w: field %s of file %s", ErrNoSuchField, field, letter)
	}

	return v, nil
}

// SetField writes a field of the current record of a file, creating the
// record, and for unknown letters a scratch file, when absent.
func (s *Store) SetField(letter, field string, v Value) {
	s.target(letter).Set(field, v)
}

func (s *Store) target(letter string) *Record {
	letter = normalize(letter)
	f, ok := s.files[letter]
	if !ok {
		f = &File{Letter: letter, Kind: KindScratch}
		s.files[letter] = f
		s.letters = append(s.letters, letter)
	}

	if f.current == nil {
		f.current = New()
	}

	return f.current
}

// Transfer makes the current record of to an independent copy of the
// current record of from.
func (s *Store) Transfer(from, to string) error {
	src, ok := s.Current(from)
	if !ok {
		return fmt.Errorf("%w for file %s", ErrNoCurrentRecord, from)
	}

	s.target(to)
	s.files[normalize(to)].current = src.Clone()

	return nil
}

// Write appends a copy of the current record of a file to its output
// buffer.
func (s *Store) Write(letter string) error {
	f, ok := s.files[normalize(letter)]
	if !ok || f.Kind != KindOutput {
		return fmt.Errorf("%w: %s", ErrNotOutput, letter)
	}

	if f.current == nil {
		return fmt.Errorf("%w for file %s", ErrNoCurrentRecord, letter)
	}

	f.out = append(f.out, f.current.Clone())

	return nil
}

// Rewind moves a file back to its first record.
func (s *Store) Rewind(letter string) error {
	f, err := s.registered(letter)
	if err != nil {
		return err
	}

	f.cursor = 0
	f.eod = false
	f.current = nil

	return nil
}

// MarkPrinter lists an output file on the High Speed Printer when it is
// closed.
func (s *Store) MarkPrinter(letter string) error {
	f, err := s.registered(letter)
	if err != nil {
		return err
	}

	f.printer = true

	return nil
}

// Close persists the output buffer of each output file and marks it closed.
// Letters that are not output files are skipped.
func (s *Store) Close(letters ...string) error {
	for _, letter := range letters {
		f, ok := s.files[normalize(letter)]
		if !ok || f.Kind != KindOutput {
			slog.Debug("Skipping close of non-output file", "File", letter)
			continue
		}

		if err := s.backend.Persist(f.Name, f.out); err != nil {
			return fmt.Errorf("failed to write file %s (%s): %w", f.Letter, f.Name, err)
		}

		f.closed = true
		slog.Debug("Closed file", "File", f.Letter, "Name", f.Name, "Records", len(f.out))

		if f.printer && s.printer != nil {
			if err := PrintListing(s.printer, f); err != nil {
				return fmt.Errorf("failed to print file %s: %w", f.Letter, err)
			}
		}
	}

	return nil
}

// AnyEndOfData reports whether some registered file hit end of data.
func (s *Store) AnyEndOfData() bool {
	for _, letter := range s.letters {
		if s.files[letter].eod {
			return true
		}
	}

	return false
}

// normalize strips the parentheses letters are sometimes written with.
func normalize(letter string) string {
	return strings.Trim(strings.TrimSpace(letter), "()")
}
