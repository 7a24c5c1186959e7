package record

import "io"

// Builder creates stores.
type Builder struct {
	backend Backend
	printer io.Writer
	lenient bool
}

// NewBuilder returns a builder that keeps data in memory.
func NewBuilder() Builder {
	return Builder{}
}

// WithBackend sets where files are loaded from and persisted to.
func (b Builder) WithBackend(backend Backend) Builder {
	b.backend = backend
	return b
}

// WithPrinter sets where High Speed Printer listings go.
func (b Builder) WithPrinter(w io.Writer) Builder {
	b.printer = w
	return b
}

// WithLenientLoad makes a failed load leave the file empty instead of
// failing the registration.
func (b Builder) WithLenientLoad(lenient bool) Builder {
	b.lenient = lenient
	return b
}

// Build creates a store.
func (b Builder) Build() *Store {
	backend := b.backend
	if backend == nil {
		backend = NewMemBackend()
	}

	return &Store{
		backend: backend,
		printer: b.printer,
		lenient: b.lenient,
		files:   make(map[string]*File),
	}
}
