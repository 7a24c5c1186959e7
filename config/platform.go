package config

import (
	"context"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/flowmatic/api"
	"github.com/sarchlab/flowmatic/core"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

// Platform is everything needed to run one program.
type Platform struct {
	Engine  sim.Engine
	Store   *record.Store
	Machine *core.Machine
	Driver  *api.Driver

	printer io.Closer
}

// Close releases the printer file, if the platform opened one.
func (p *Platform) Close() error {
	if p.printer == nil {
		return nil
	}

	return p.printer.Close()
}

// Run drives the machine until it halts.
func (p *Platform) Run(ctx context.Context) (api.Report, error) {
	return p.Driver.Run(ctx)
}

// PlatformBuilder assembles platforms.
type PlatformBuilder struct {
	cfg     Config
	backend record.Backend
	printer io.Writer
}

// NewPlatformBuilder creates a builder with the default settings.
func NewPlatformBuilder() PlatformBuilder {
	return PlatformBuilder{cfg: Default()}
}

// WithConfig sets the run settings.
func (b PlatformBuilder) WithConfig(cfg Config) PlatformBuilder {
	b.cfg = cfg
	return b
}

// WithBackend overrides the data directory of the settings.
func (b PlatformBuilder) WithBackend(backend record.Backend) PlatformBuilder {
	b.backend = backend
	return b
}

// WithPrinter overrides the printer of the settings.
func (b PlatformBuilder) WithPrinter(w io.Writer) PlatformBuilder {
	b.printer = w
	return b
}

// Build creates a platform for prog.
func (b PlatformBuilder) Build(name string, prog *program.Program) (*Platform, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	backend := b.backend
	if backend == nil {
		backend = record.DirBackend{Dir: b.cfg.DataDir}
	}

	printer := b.printer
	var closer io.Closer
	if printer == nil {
		f, err := b.openPrinter()
		if err != nil {
			return nil, err
		}

		printer = f
		if c, ok := f.(io.Closer); ok && f != io.Writer(os.Stdout) {
			closer = c
		}
	}

	engine := sim.NewSerialEngine()

	store := record.NewBuilder().
		WithBackend(backend).
		WithPrinter(printer).
		WithLenientLoad(b.cfg.LenientLoad).
		Build()

	machine := core.NewBuilder().
		WithStore(store).
		WithMaxSteps(b.cfg.MaxSteps).
		Build(prog)

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(sim.Freq(b.cfg.FrequencyHz)).
		WithMachine(machine).
		Build(name + ".Driver")

	return &Platform{
		Engine:  engine,
		Store:   store,
		Machine: machine,
		Driver:  driver,
		printer: closer,
	}, nil
}

func (b PlatformBuilder) openPrinter() (io.Writer, error) {
	switch b.cfg.Printer {
	case "", "-":
		return os.Stdout, nil
	case "none":
		return io.Discard, nil
	default:
		return os.OpenFile(b.cfg.Printer, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
}
