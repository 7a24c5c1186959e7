package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/flowmatic/config"
	"github.com/sarchlab/flowmatic/core"
	"github.com/sarchlab/flowmatic/program"
)

var runFlags struct {
	config    string
	dataDir   string
	maxSteps  uint64
	frequency float64
	strict    bool
	logLevel  string
	logFormat string
	printer   string
	dumpState bool
}

var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Run a program",
	Long: `Run parses PROGRAM and executes it from operation (0) until it stops,
runs past its last operation, or fails.

The exit code is 0 on a normal halt and 1 when the program fails. Problems
with the command line, the configuration or the program text exit with 2.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return &exitError{code: exitUsage, err: err}
		}

		if err := setupLogging(cfg); err != nil {
			return &exitError{code: exitUsage, err: err}
		}

		return runProgram(cmd, cfg, args[0])
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.config, "config", "c", "", "YAML configuration file")
	f.StringVarP(&runFlags.dataDir, "data-dir", "d", "", "directory of the .dat files")
	f.Uint64Var(&runFlags.maxSteps, "max-steps", 0, "stop after this many operations, 0 for no limit")
	f.Float64Var(&runFlags.frequency, "frequency", 0, "operations per second of virtual time")
	f.BoolVar(&runFlags.strict, "strict", false, "treat skipped or re-declared lines as errors")
	f.StringVar(&runFlags.logLevel, "log-level", "", "trace, debug, info, warn or error")
	f.StringVar(&runFlags.logFormat, "log-format", "", "text or json")
	f.StringVar(&runFlags.printer, "printer", "", `High Speed Printer output: "-" for stdout, "none", or a file`)
	f.BoolVar(&runFlags.dumpState, "dump-state", false, "print the machine state when the run ends")

	rootCmd.AddCommand(runCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if runFlags.config != "" {
		var err error
		cfg, err = config.Load(runFlags.config)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = runFlags.dataDir
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = runFlags.maxSteps
	}
	if flags.Changed("frequency") {
		cfg.FrequencyHz = runFlags.frequency
	}
	if flags.Changed("strict") {
		cfg.Strict = runFlags.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = runFlags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = runFlags.logFormat
	}
	if flags.Changed("printer") {
		cfg.Printer = runFlags.printer
	}

	return cfg, cfg.Validate()
}

func setupLogging(cfg config.Config) error {
	handler, err := cfg.Log.Handler(os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func runProgram(cmd *cobra.Command, cfg config.Config, path string) error {
	var opts []program.Option
	if cfg.Strict {
		opts = append(opts, program.WithStrict())
	}

	prog, err := program.ParseFile(path, opts...)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	platform, err := config.NewPlatformBuilder().
		WithConfig(cfg).
		Build("FlowMatic", prog)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	defer platform.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := platform.Run(ctx)
	if err != nil {
		return &exitError{code: exitFatal, err: err}
	}

	if runFlags.dumpState {
		core.PrintState(cmd.OutOrStdout(), platform.Machine)
	}

	slog.Info("Run finished",
		"State", report.State,
		"Op", report.Op,
		"Reason", report.Reason,
		"Steps", report.Steps,
		"Time", float64(report.Time*1e9),
	)

	if report.State == core.HaltedFatal {
		return &exitError{code: exitFatal, err: report.Fault}
	}

	return nil
}

