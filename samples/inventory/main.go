// Inventory prices an inventory file against a price file, the classic
// FLOW-MATIC demonstration. Items with a price go to PRICED-INV with their
// extended price; the rest go to UNPRICED-INV, which is also listed on the
// High Speed Printer.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/flowmatic/api"
	"github.com/sarchlab/flowmatic/config"
	"github.com/sarchlab/flowmatic/core"
	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/record"
)

//go:embed inventory.fm
var source string

func loadData(backend *record.MemBackend) {
	backend.Put("INVENTORY",
		record.FromPairs("PRODUCT-NO", "P100", "QUANTITY", "10"),
		record.FromPairs("PRODUCT-NO", "P200", "QUANTITY", "3"),
		record.FromPairs("PRODUCT-NO", "P250", "QUANTITY", "7"),
		record.FromPairs("PRODUCT-NO", "P300", "QUANTITY", "2"),
		record.FromPairs("PRODUCT-NO", "P400", "QUANTITY", "1"),
	)

	backend.Put("PRICE",
		record.FromPairs("PRODUCT-NO", "P100", "UNIT-PRICE", "2.50"),
		record.FromPairs("PRODUCT-NO", "P150", "UNIT-PRICE", "1.00"),
		record.FromPairs("PRODUCT-NO", "P300", "UNIT-PRICE", "4"),
	)
}

func runInventory(w io.Writer) (api.Report, *record.MemBackend, error) {
	prog, err := program.Parse(source, program.WithStrict())
	if err != nil {
		return api.Report{}, nil, err
	}

	backend := record.NewMemBackend()
	loadData(backend)

	platform, err := config.NewPlatformBuilder().
		WithBackend(backend).
		WithPrinter(w).
		Build("Inventory", prog)
	if err != nil {
		return api.Report{}, nil, err
	}

	report, err := platform.Run(context.Background())

	return report, backend, err
}

func printFile(w io.Writer, backend *record.MemBackend, name string) {
	records, _ := backend.Persisted(name)

	t := table.NewWriter()
	t.SetTitle(name)
	t.AppendHeader(table.Row{"#", "Item"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.String()})
	}

	fmt.Fprintln(w, t.Render())
}

func main() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	slog.SetDefault(slog.New(handler))

	report, backend, err := runInventory(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	printFile(os.Stdout, backend, "PRICED-INV")

	fmt.Printf("%s at operation %s after %d operations (%.0f ns)\n",
		report.Reason, report.Op, report.Steps, float64(report.Time*1e9))

	if report.State != core.HaltedNormal {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
