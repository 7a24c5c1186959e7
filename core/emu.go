package core

import (
	"fmt"

	"github.com/sarchlab/flowmatic/instr"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

type outcome int

const (
	proceed outcome = iota
	branch
	halt
)

// effect tells the machine what to do after a sub-command.
type effect struct {
	kind   outcome
	target program.OpNumber
}

type instEmulator struct {
}

// RunInst executes one decoded sub-command against the machine state.
func (i instEmulator) RunInst(inst instr.Inst, state *machineState) (effect, error) {
	switch inst := inst.(type) {
	case instr.Input:
		return i.runInput(inst, state)
	case instr.Output:
		return i.runOutput(inst, state)
	case instr.HSP:
		return effect{}, state.store.MarkPrinter(inst.File)
	case instr.Transfer:
		return effect{}, state.store.Transfer(inst.From, inst.To)
	case instr.Compare:
		return i.runCompare(inst, state)
	case instr.ReadItem:
		return i.runReadItem(inst, state)
	case instr.WriteItem:
		return effect{}, state.store.Write(inst.File)
	case instr.Move:
		return i.runMove(inst, state)
	case instr.Jump:
		return state.branchTo(inst.Target)
	case instr.Stop:
		return effect{kind: halt}, nil
	case instr.Test:
		return i.runTest(inst, state)
	case instr.Set:
		return i.runSet(inst, state)
	case instr.Rewind:
		return effect{}, state.store.Rewind(inst.File)
	case instr.CloseOut:
		return i.runCloseOut(inst, state)
	case instr.Add:
		return i.runAdd(inst, state)
	case instr.Subtract:
		return i.runSubtract(inst, state)
	case instr.Multiply:
		return i.runMultiply(inst, state)
	case instr.Divide:
		return i.runDivide(inst, state)
	case instr.If:
		return i.runIf(inst, state)
	case instr.Otherwise:
		return effect{}, nil
	}

	panic(fmt.Sprintf("instruction %T not supported", inst))
}

func (s *machineState) branchTo(target program.OpNumber) (effect, error) {
	if !s.prog.Has(target) {
		return effect{}, fmt.Errorf("%w: %s", ErrNoSuchOperation, target)
	}

	return effect{kind: branch, target: target}, nil
}

func (s *machineState) field(ref instr.FieldRef) (record.Value, error) {
	return s.store.GetField(ref.File, ref.Field)
}

func (s *machineState) number(ref instr.FieldRef) (record.Value, float64, error) {
	v, err := s.field(ref)
	if err != nil {
		return v, 0, err
	}

	f, ok := v.Float()
	if !ok {
		return v, 0, fmt.Errorf("%w: %s is %q", ErrNotNumeric, ref, v.String())
	}

	return v, f, nil
}

func (i instEmulator) runInput(inst instr.Input, state *machineState) (effect, error) {
	for _, f := range inst.Files {
		if err := state.store.Register(f.Letter, f.Name, false); err != nil {
			return effect{}, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	return effect{}, nil
}

func (i instEmulator) runOutput(inst instr.Output, state *machineState) (effect, error) {
	for _, f := range inst.Files {
		if err := state.store.Register(f.Letter, f.Name, true); err != nil {
			return effect{}, err
		}
	}

	if inst.Printer != "" {
		if err := state.store.MarkPrinter(inst.Printer); err != nil {
			return effect{}, err
		}
	}

	return effect{}, nil
}

func (i instEmulator) runCompare(inst instr.Compare, state *machineState) (effect, error) {
	left, err := state.field(inst.Left)
	if err != nil {
		return effect{}, err
	}

	right, err := state.field(inst.Right)
	if err != nil {
		return effect{}, err
	}

	state.status = statusOf(record.Compare(left, right))
	Trace("Compare", "Left", left.String(), "Right", right.String(), "Status", state.status)

	c, ok := instr.FirstMatch(inst.Clauses, instr.CompareOrder, state.statusHolds)
	if !ok {
		return effect{}, nil
	}

	return state.branchTo(c.Target)
}

func (i instEmulator) runTest(inst instr.Test, state *machineState) (effect, error) {
	v, err := state.field(inst.Field)
	if err != nil {
		return effect{}, err
	}

	cmp := statusOf(record.Compare(v, record.ParseValue(inst.Literal)))
	Trace("Test", "Value", v.String(), "Literal", inst.Literal, "Result", cmp)

	c, ok := instr.FirstMatch(inst.Clauses, instr.TestOrder, func(cond instr.Cond) bool {
		return condHolds(cond, cmp)
	})
	if !ok {
		return effect{}, nil
	}

	return state.branchTo(c.Target)
}

func condHolds(cond instr.Cond, s Status) bool {
	switch cond {
	case instr.CondGreater:
		return s == StatusGreater
	case instr.CondEqual:
		return s == StatusEqual
	case instr.CondLess:
		return s == StatusLess
	case instr.CondOtherwise:
		return true
	default:
		return false
	}
}

func (s *machineState) statusHolds(cond instr.Cond) bool {
	return condHolds(cond, s.status)
}

func (i instEmulator) runReadItem(inst instr.ReadItem, state *machineState) (effect, error) {
	_, ok, err := state.store.ReadNext(inst.File)
	if err != nil {
		return effect{}, err
	}

	if !ok && inst.EndOfData != nil {
		return state.branchTo(*inst.EndOfData)
	}

	return effect{}, nil
}

func (i instEmulator) runMove(inst instr.Move, state *machineState) (effect, error) {
	v, err := state.field(inst.From)
	if err != nil {
		return effect{}, err
	}

	state.store.SetField(inst.To.File, inst.To.Field, v)

	return effect{}, nil
}

func (i instEmulator) runSet(inst instr.Set, state *machineState) (effect, error) {
	for _, n := range []program.OpNumber{inst.From, inst.To} {
		if !state.prog.Has(n) {
			return effect{}, fmt.Errorf("%w: %s", ErrNoSuchOperation, n)
		}
	}

	state.jumps.Set(inst.From, inst.To)
	Trace("Set", "From", inst.From, "To", inst.To)

	return effect{}, nil
}

func (i instEmulator) runCloseOut(inst instr.CloseOut, state *machineState) (effect, error) {
	if err := state.store.Close(inst.Files...); err != nil {
		return effect{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return effect{}, nil
}

func (i instEmulator) runAdd(inst instr.Add, state *machineState) (effect, error) {
	_, a, err := state.number(inst.From)
	if err != nil {
		return effect{}, err
	}

	prior, b, err := state.number(inst.To)
	if err != nil {
		return effect{}, err
	}

	state.store.SetField(inst.To.File, inst.To.Field, render(b+a, prior.Integral()))

	return effect{}, nil
}

func (i instEmulator) runSubtract(inst instr.Subtract, state *machineState) (effect, error) {
	_, a, err := state.number(inst.Amount)
	if err != nil {
		return effect{}, err
	}

	prior, b, err := state.number(inst.From)
	if err != nil {
		return effect{}, err
	}

	state.store.SetField(inst.From.File, inst.From.Field, render(b-a, prior.Integral()))

	return effect{}, nil
}

func (i instEmulator) runMultiply(inst instr.Multiply, state *machineState) (effect, error) {
	lv, l, err := state.number(inst.Left)
	if err != nil {
		return effect{}, err
	}

	rv, r, err := state.number(inst.Right)
	if err != nil {
		return effect{}, err
	}

	result := render(l*r, lv.Integral() && rv.Integral())
	state.store.SetField(inst.Giving.File, inst.Giving.Field, result)

	return effect{}, nil
}

func (i instEmulator) runDivide(inst instr.Divide, state *machineState) (effect, error) {
	_, l, err := state.number(inst.Left)
	if err != nil {
		return effect{}, err
	}

	_, r, err := state.number(inst.Right)
	if err != nil {
		return effect{}, err
	}

	if r == 0 {
		return effect{}, fmt.Errorf("%w: %s", ErrDivideByZero, inst.Right)
	}

	state.store.SetField(inst.Giving.File, inst.Giving.Field, record.FloatValue(l/r))

	return effect{}, nil
}

func (i instEmulator) runIf(inst instr.If, state *machineState) (effect, error) {
	var holds bool
	if inst.Clause.Cond == instr.CondEndOfData {
		holds = state.store.AnyEndOfData()
	} else {
		holds = state.statusHolds(inst.Clause.Cond)
	}

	if !holds {
		return effect{}, nil
	}

	return state.branchTo(inst.Clause.Target)
}

// render formats an arithmetic result, truncating toward zero when the
// result is to be an integer.
func render(f float64, integer bool) record.Value {
	if integer {
		return record.IntValue(int64(f))
	}

	return record.FloatValue(f)
}
