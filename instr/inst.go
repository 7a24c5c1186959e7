package instr

import "github.com/sarchlab/flowmatic/program"

// Inst is a decoded sub-command. The set of implementations is closed; the
// dispatcher switches over them exhaustively.
type Inst interface {
	Keyword() Keyword
	isInst()
}

// FileSpec binds a file letter to the name of its backing data.
type FileSpec struct {
	Name   string
	Letter string
}

// Input registers input files and loads their records.
type Input struct {
	Files []FileSpec
}

// Output registers output files. Printer optionally names a letter listed
// on the High Speed Printer when closed.
type Output struct {
	Files   []FileSpec
	Printer string
}

// HSP marks an output file for the High Speed Printer.
type HSP struct {
	File string
}

// Transfer copies the whole current record of From to To.
type Transfer struct {
	From, To string
}

// Compare compares two fields, sets the comparison status and evaluates its
// clauses.
type Compare struct {
	Left, Right FieldRef
	Clauses     []Clause
}

// ReadItem advances the cursor of File. EndOfData, when set, is the branch
// taken once the file is exhausted.
type ReadItem struct {
	File      string
	EndOfData *program.OpNumber
}

// WriteItem appends the current record of File to its output buffer.
type WriteItem struct {
	File string
}

// Move copies one field.
type Move struct {
	From, To FieldRef
}

// Jump branches unconditionally.
type Jump struct {
	Target program.OpNumber
}

// Stop halts the program.
type Stop struct{}

// Test compares a field with a literal and evaluates its clauses.
type Test struct {
	Field   FieldRef
	Literal string
	Clauses []Clause
}

// Set overrides the successor of From with To.
type Set struct {
	From, To program.OpNumber
}

// Rewind resets a file to its first record.
type Rewind struct {
	File string
}

// CloseOut persists the output buffers of Files.
type CloseOut struct {
	Files []string
}

// Add computes To := To + From.
type Add struct {
	From, To FieldRef
}

// Subtract computes From := From - Amount.
type Subtract struct {
	Amount, From FieldRef
}

// Multiply computes Giving := Left * Right.
type Multiply struct {
	Left, Right, Giving FieldRef
}

// Divide computes Giving := Left / Right.
type Divide struct {
	Left, Right, Giving FieldRef
}

// If branches when its condition holds at the time it runs.
type If struct {
	Clause Clause
}

// Otherwise outside COMPARE or TEST does nothing.
type Otherwise struct{}

func (Input) Keyword() Keyword     { return KwInput }
func (Output) Keyword() Keyword    { return KwOutput }
func (HSP) Keyword() Keyword       { return KwHSP }
func (Transfer) Keyword() Keyword  { return KwTransfer }
func (Compare) Keyword() Keyword   { return KwCompare }
func (ReadItem) Keyword() Keyword  { return KwReadItem }
func (WriteItem) Keyword() Keyword { return KwWriteItem }
func (Move) Keyword() Keyword      { return KwMove }
func (Jump) Keyword() Keyword      { return KwJump }
func (Stop) Keyword() Keyword      { return KwStop }
func (Test) Keyword() Keyword      { return KwTest }
func (Set) Keyword() Keyword       { return KwSet }
func (Rewind) Keyword() Keyword    { return KwRewind }
func (CloseOut) Keyword() Keyword  { return KwCloseOut }
func (Add) Keyword() Keyword       { return KwAdd }
func (Subtract) Keyword() Keyword  { return KwSubtract }
func (Multiply) Keyword() Keyword  { return KwMultiply }
func (Divide) Keyword() Keyword    { return KwDivide }
func (If) Keyword() Keyword        { return KwIf }
func (Otherwise) Keyword() Keyword { return KwOtherwise }

func (Input) isInst()     {}
func (Output) isInst()    {}
func (HSP) isInst()       {}
func (Transfer) isInst()  {}
func (Compare) isInst()   {}
func (ReadItem) isInst()  {}
func (WriteItem) isInst() {}
func (Move) isInst()      {}
func (Jump) isInst()      {}
func (Stop) isInst()      {}
func (Test) isInst()      {}
func (Set) isInst()       {}
func (Rewind) isInst()    {}
func (CloseOut) isInst()  {}
func (Add) isInst()       {}
func (Subtract) isInst()  {}
func (Multiply) isInst()  {}
func (Divide) isInst()    {}
func (If) isInst()        {}
func (Otherwise) isInst() {}
