// Package api runs FLOW-MATIC machines on the akita simulation engine, one
// operation per cycle.
package api

import (
	"context"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/flowmatic/core"
)

// HookPosStep marks the execution of one operation. The hook item is the
// core.StepRecord of the step.
var HookPosStep = &sim.HookPos{Name: "Step"}

// Report is the outcome of a driven run.
type Report struct {
	core.Result

	// Time is the virtual time at which the machine halted.
	Time sim.VTimeInSec
}

// Driver feeds a machine with clock ticks.
type Driver struct {
	*sim.TickingComponent

	machine *core.Machine
	ctx     context.Context
}

// Machine returns the driven machine.
func (d *Driver) Machine() *core.Machine {
	return d.machine
}

// Tick executes one operation.
func (d *Driver) Tick() (madeProgress bool) {
	if d.machine.State() != core.Running {
		return false
	}

	rec := d.machine.Step(d.ctx)

	core.Trace("Tick",
		"Time", float64(d.Engine.CurrentTime()*1e9),
		"Op", rec.Op,
		"State", rec.State,
	)

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosStep,
		Item:   rec,
	})

	return rec.State == core.Running
}

// Run ticks the machine until it halts.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	d.ctx = ctx

	d.TickNow()
	if err := d.Engine.Run(); err != nil {
		return Report{}, fmt.Errorf("engine failed: %w", err)
	}

	return Report{
		Result: d.machine.Result(),
		Time:   d.Engine.CurrentTime(),
	}, nil
}
