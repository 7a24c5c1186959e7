package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace sits between Info and Warn so per-step traces can be enabled
// without the debug chatter of the store.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState writes the machine registers and the lettered files as tables.
func PrintState(w io.Writer, m *Machine) {
	regTable := table.NewWriter()
	regTable.SetTitle("Machine")
	regTable.AppendHeader(table.Row{"State", "Op", "Next", "Status", "Steps"})
	regTable.AppendRow(table.Row{
		m.run,
		m.state.op,
		m.Successor(m.state.op),
		m.state.status,
		m.steps,
	})
	fmt.Fprintln(w, regTable.Render())

	store := m.state.store
	fileTable := table.NewWriter()
	fileTable.SetTitle("Files")
	fileTable.AppendHeader(table.Row{"File", "Name", "Kind", "Read", "EOD", "Written", "Current"})
	for _, letter := range store.Letters() {
		f, _ := store.File(letter)

		current := "-"
		if r, ok := f.Current(); ok {
			current = r.String()
		}

		fileTable.AppendRow(table.Row{
			f.Letter,
			f.Name,
			f.Kind,
			fmt.Sprintf("%d/%d", f.Position(), f.Records()),
			f.EndOfData(),
			len(f.Output()),
			current,
		})
	}
	fmt.Fprintln(w, fileTable.Render())
}

// LogState logs a checkpoint of the machine at debug level.
func LogState(m *Machine) {
	slog.Debug("StateCheckpoint",
		"State", m.run,
		"Op", m.state.op,
		"Status", m.state.status,
		"Steps", m.steps,
		"Files", m.state.store.Letters(),
	)
}
