package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/storesim/sim/metrics"
	"github.com/inference-sim/storesim/sim/population"
	"github.com/inference-sim/storesim/sim/trace"
)

var (
	logLevel   string // Log verbosity level
	csvPath    string // CSV output path, empty to skip
	sqlitePath string // SQLite database path, empty to skip
	traceLevel string // Engine trace level: none, engine, events
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "storesim",
	Short: "Discrete-event simulator of a shared store under an epidemic",
}

// runCmd executes one population run using a preset, an optional scenario
// file, and CLI overrides.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the population simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, engine, events)", traceLevel)
		}

		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		opts := outputOptions{
			Preset:     presetName,
			CSVPath:    csvPath,
			SQLitePath: sqlitePath,
			TraceLevel: trace.TraceLevel(traceLevel),
		}
		if err := runScenario(cfg, opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// presetsCmd prints the built-in scenarios.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in scenarios and their parameters",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printPresets(os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// outputOptions selects where a run's results go.
type outputOptions struct {
	Preset     string
	CSVPath    string
	SQLitePath string
	TraceLevel trace.TraceLevel
}

// runScenario builds and runs the model, exports its table, and prints the
// summary to w. The table is exported even when the run stopped on an engine
// error so partial results can be inspected.
func runScenario(cfg population.Config, opts outputOptions, w io.Writer) error {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	m, err := population.NewModel(cfg, population.WithTrace(st))
	if err != nil {
		return err
	}

	startTime := time.Now()
	table, runErr := m.Run()
	logrus.Infof("Simulated %d ticks in %v", m.Simulator().Now(), time.Since(startTime))

	run := metrics.NewRun(opts.Preset, cfg.Seed)
	exporters, err := openExporters(opts)
	if err != nil {
		return err
	}
	exportErr := metrics.ExportAll(run, table, exporters...)
	for _, e := range exporters {
		if cerr := e.Close(); cerr != nil && exportErr == nil {
			exportErr = cerr
		}
	}

	fmt.Fprintf(w, "Run ID               : %s\n", run.ID)
	m.Summary().Print(w)
	if st != nil {
		printTraceSummary(w, trace.Summarize(st))
	}

	if runErr != nil {
		return runErr
	}
	return exportErr
}

func openExporters(opts outputOptions) ([]metrics.Exporter, error) {
	var exporters []metrics.Exporter
	if opts.CSVPath != "" {
		e, err := metrics.CreateCSVFile(opts.CSVPath)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, e)
	}
	if opts.SQLitePath != "" {
		e, err := metrics.OpenSQLite(opts.SQLitePath)
		if err != nil {
			for _, open := range exporters {
				_ = open.Close()
			}
			return nil, err
		}
		exporters = append(exporters, e)
	}
	return exporters, nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Engine Trace Summary ===")
	fmt.Fprintf(w, "Spawns               : %d\n", s.Spawns)
	fmt.Fprintf(w, "Terminations         : %d\n", s.Terminations)
	if s.Resumes > 0 {
		fmt.Fprintf(w, "Resumes              : %d\n", s.Resumes)
	}
	fmt.Fprintf(w, "Enqueues             : %d\n", s.Enqueues)
	fmt.Fprintf(w, "Grants               : %d\n", s.Grants)
	fmt.Fprintf(w, "Releases             : %d\n", s.Releases)
	fmt.Fprintf(w, "Max Wait             : %d\n", s.MaxWait)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	registerScenarioFlags(runCmd.Flags())
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&csvPath, "out", "", "Write the metric table to this CSV file")
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Append the metric table to this SQLite database")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Engine trace level (none, engine, events)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
}
