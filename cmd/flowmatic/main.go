// Command flowmatic runs and lints FLOW-MATIC programs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// exitError carries the exit code a command wants.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

var rootCmd = &cobra.Command{
	Use:   "flowmatic",
	Short: "An interpreter for FLOW-MATIC business programs",
	Long: `Flowmatic executes programs written as numbered operations that read,
compare, compute and write records of lettered files.

Data files live in a directory as <lowercase file name>.dat, one item per
line, with fields written as "NAME: VALUE" and separated by ", ".
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		atexit.Exit(exitOK)
	}

	fmt.Fprintln(os.Stderr, "flowmatic:", err)

	var ee *exitError
	if errors.As(err, &ee) {
		atexit.Exit(ee.code)
	}

	atexit.Exit(exitUsage)
}
