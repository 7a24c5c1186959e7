package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sarchlab/flowmatic/program"
	"github.com/sarchlab/flowmatic/verify"
)

var lintOutput string

var lintCmd = &cobra.Command{
	Use:   "lint PROGRAM",
	Short: "Check a program without running it",
	Long: `Lint reports lines the parser skips, sub-commands that do not decode,
branches to missing operations, files used before they are declared, and
operations that can never run. It exits with 1 when errors are found.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := program.ParseFile(args[0])
		if err != nil {
			return &exitError{code: exitUsage, err: err}
		}

		report := verify.GenerateReport(filepath.Base(args[0]), prog)
		report.WriteReport(cmd.OutOrStdout())

		if lintOutput != "" {
			if err := report.SaveReportToFile(lintOutput); err != nil {
				return &exitError{code: exitUsage, err: err}
			}
		}

		if report.HasErrors() {
			return &exitError{
				code: exitFatal,
				err:  fmt.Errorf("%d lint errors", len(report.Errors())),
			}
		}

		return nil
	},
}

func init() {
	lintCmd.Flags().StringVarP(&lintOutput, "output", "o", "", "also save the report to this file")

	rootCmd.AddCommand(lintCmd)
}
