package core

import (
	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

// Builder can create new machines.
type Builder struct {
	store    *record.Store
	maxSteps uint64
}

// NewBuilder creates a builder with an in-memory store and no step limit.
func NewBuilder() Builder {
	return Builder{}
}

// WithStore sets the record store.
func (b Builder) WithStore(store *record.Store) Builder {
	b.store = store
	return b
}

// WithMaxSteps sets how many operations a run may execute. Zero means no
// limit.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// Build creates a machine positioned at operation 0 of prog.
func (b Builder) Build(prog *program.Program) *Machine {
	if prog == nil {
		panic("core: Build needs a program")
	}

	store := b.store
	if store == nil {
		store = record.NewBuilder().Build()
	}

	return &Machine{
		state: machineState{
			prog:  prog,
			jumps: prog.DefaultJumps(),
			store: store,
		},
		maxSteps: b.maxSteps,
		decoded:  make(map[string]instr.Inst),
	}
}
