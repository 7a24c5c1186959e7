package record

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintListing writes the output records of a file as a table, the way the
// High Speed Printer lists a closed file.
func PrintListing(w io.Writer, f *File) error {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("FILE-%s %s (%d items)", f.Letter, f.Name, len(f.out)))

	var columns []string
	seen := make(map[string]bool)
	for _, r := range f.out {
		for _, name := range r.names {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}

	header := table.Row{"#"}
	for _, c := range columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, r := range f.out {
		row := table.Row{i + 1}
		for _, c := range columns {
			v, _ := r.Get(c)
			row = append(row, v.String())
		}
		t.AppendRow(row)
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}
