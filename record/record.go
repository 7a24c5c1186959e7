package record

import (
	"fmt"
	"strings"
)

// Record is an ordered mapping from field name to value.
type Record struct {
	names  []string
	values map[string]Value
}

// New creates an empty record.
func New() *Record {
	return &Record{values: make(map[string]Value)}
}

// FromPairs builds a record from alternating names and values.
func FromPairs(pairs ...string) *Record {
	if len(pairs)%2 != 0 {
		panic("record.FromPairs needs name/value pairs")
	}

	r := New()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i], ParseValue(pairs[i+1]))
	}

	return r
}

// Get returns the value of a field.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set writes a field. New fields are appended after existing ones.
func (r *Record) Set(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	c := &Record{
		names:  append([]string(nil), r.names...),
		values: make(map[string]Value, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}

	return c
}

// String renders the record in data file format, "name: value" pairs
// joined by ", ".
func (r *Record) String() string {
	parts := make([]string, 0, len(r.names))
	for _, name := range r.names {
		parts = append(parts, name+": "+r.values[name].String())
	}

	return strings.Join(parts, ", ")
}

// ParseLine reads one data file line. Fields without a ": " separator are
// returned as malformed and left out of the record.
func ParseLine(line string) (r *Record, malformed []string) {
	r = New()
	line = strings.TrimSpace(line)
	if line == "" {
		return r, nil
	}

	for _, f := range strings.Split(line, ", ") {
		name, value, ok := strings.Cut(f, ": ")
		if !ok {
			malformed = append(malformed, f)
			continue
		}
		r.Set(name, ParseValue(value))
	}

	return r, malformed
}

// GoString helps test failure output.
func (r *Record) GoString() string {
	return fmt.Sprintf("record{%s}", r.String())
}
