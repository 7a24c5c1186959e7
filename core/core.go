package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

// Halting reasons of a normal halt.
const (
	ReasonStop = "STOP"
	ReasonEnd  = "end of program"
)

// StepRecord describes one executed operation.
type StepRecord struct {
	Step     uint64
	Op       program.OpNumber
	Commands []string
	Branched bool
	Next     program.Successor
	Status   Status
	State    State
	Reason   string
	Fault    *Fault
}

// Result is the outcome of a run.
type Result struct {
	State  State
	Op     program.OpNumber
	Reason string
	Steps  uint64
	Fault  *Fault
}

// Machine executes a parsed program one operation at a time.
type Machine struct {
	state    machineState
	emu      instEmulator
	run      State
	maxSteps uint64
	steps    uint64
	decoded  map[string]instr.Inst
	result   Result
}

// State returns the run state.
func (m *Machine) State() State {
	return m.run
}

// CurrentOp returns the operation the next step executes.
func (m *Machine) CurrentOp() program.OpNumber {
	return m.state.op
}

// Status returns the comparison status.
func (m *Machine) Status() Status {
	return m.state.status
}

// Steps returns how many operations have been executed.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Store returns the record store the machine works on.
func (m *Machine) Store() *record.Store {
	return m.state.store
}

// Successor returns where control goes after op without a branch.
func (m *Machine) Successor(op program.OpNumber) program.Successor {
	next, _ := m.state.jumps.Next(op)
	return next
}

// Result returns the outcome so far. It is final once the machine halts.
func (m *Machine) Result() Result {
	r := m.result
	r.State = m.run
	r.Steps = m.steps

	return r
}

// Run steps the machine until it halts.
func (m *Machine) Run(ctx context.Context) Result {
	for m.run == Running {
		m.Step(ctx)
	}

	LogState(m)

	return m.Result()
}

// Step executes the current operation. Stepping a halted machine does
// nothing.
func (m *Machine) Step(ctx context.Context) StepRecord {
	op := m.state.op
	rec := StepRecord{Step: m.steps, Op: op}

	if m.run != Running {
		return m.finish(rec)
	}

	if err := ctx.Err(); err != nil {
		return m.fail(rec, "", err)
	}

	if m.maxSteps > 0 && m.steps >= m.maxSteps {
		return m.fail(rec, "", fmt.Errorf("%w: %d", ErrStepLimit, m.maxSteps))
	}

	m.steps++

	text, ok := m.state.prog.Instruction(op)
	if !ok {
		return m.fail(rec, "", fmt.Errorf("%w: %s", ErrNoSuchOperation, op))
	}

	rec.Commands = instr.Split(text)
	Trace("Step", "Step", rec.Step, "Op", op, "Text", text)

	for _, cmd := range rec.Commands {
		inst, err := m.decode(cmd)
		if err != nil {
			return m.fail(rec, cmd, err)
		}

		Trace("Inst", "Op", op, "Command", cmd)

		eff, err := m.emu.RunInst(inst, &m.state)
		if err != nil {
			return m.fail(rec, cmd, err)
		}

		switch eff.kind {
		case branch:
			if eff.target == op {
				Trace("Branch", "From", op, "To", eff.target, "Taken", false)
				continue
			}

			m.state.op = eff.target
			rec.Branched = true
			rec.Next = program.Successor{Op: eff.target, Valid: true}
			Trace("Branch", "From", op, "To", eff.target)

			return m.finish(rec)
		case halt:
			return m.stop(rec, ReasonStop)
		}
	}

	next, _ := m.state.jumps.Next(op)
	if !next.Valid {
		return m.stop(rec, ReasonEnd)
	}

	m.state.op = next.Op
	rec.Next = next

	return m.finish(rec)
}

// decode caches decoded sub-commands by their text. Failures are not cached
// so they surface each time the sub-command runs.
func (m *Machine) decode(cmd string) (instr.Inst, error) {
	if inst, ok := m.decoded[cmd]; ok {
		return inst, nil
	}

	inst, err := instr.Decode(cmd)
	if err != nil {
		return nil, err
	}

	m.decoded[cmd] = inst

	return inst, nil
}

func (m *Machine) stop(rec StepRecord, reason string) StepRecord {
	m.run = HaltedNormal
	m.result = Result{Op: rec.Op, Reason: reason}
	rec.Reason = reason
	slog.Debug("Program halted", "Op", rec.Op, "Reason", reason, "Steps", m.steps)

	return m.finish(rec)
}

func (m *Machine) fail(rec StepRecord, cmd string, err error) StepRecord {
	f := &Fault{Kind: classify(err), Op: rec.Op, Command: cmd, Err: err}

	m.run = HaltedFatal
	m.result = Result{Op: rec.Op, Reason: f.Kind.String(), Fault: f}
	rec.Reason = f.Kind.String()
	rec.Fault = f
	slog.Error("Program failed", "Op", rec.Op, "Kind", f.Kind, "Command", cmd, "Error", err)

	return m.finish(rec)
}

func (m *Machine) finish(rec StepRecord) StepRecord {
	rec.State = m.run
	rec.Status = m.state.status
	if m.run != Running && rec.Reason == "" {
		rec.Reason = m.result.Reason
		rec.Fault = m.result.Fault
	}

	return rec
}
