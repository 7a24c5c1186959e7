package api

import (
	"context"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/flowmatic/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	machine *core.Machine
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets how many operations the driver executes per second.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithMachine sets the machine to drive.
func (b DriverBuilder) WithMachine(m *core.Machine) DriverBuilder {
	b.machine = m
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) *Driver {
	if b.engine == nil {
		panic("api: driver needs an engine")
	}

	if b.machine == nil {
		panic("api: driver needs a machine")
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	d := &Driver{
		machine: b.machine,
		ctx:     context.Background(),
	}
	d.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, d)

	return d
}
