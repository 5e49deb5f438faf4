package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/packet-sim/md1k/sim"
	"github.com/packet-sim/md1k/sim/analytic"
	"github.com/packet-sim/md1k/sim/export"
	"github.com/packet-sim/md1k/sim/trace"
)

var (
	logLevel        string // Log verbosity level
	outputFormat    string // text, json or yaml
	traceFile       string // JSON-lines event trace destination
	traceMaxEvents  int    // cap on stored trace events
	metricsTextfile string // Prometheus textfile destination
	compare         bool   // print closed-form M/D/1 predictions next to the results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "md1k",
	Short: "Tick-driven M/D/1/K router queue simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes the simulation using parameters from the config file, env and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the router simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if !sim.IsValidOutputFormat(outputFormat) {
			logrus.Fatalf("Unknown output format %q (valid: text, json, yaml)", outputFormat)
		}
		cfg, err := resolveConfig(cmd.Flags(), newEnv())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Failed to create simulator: %v", err)
		}
		if traceFile != "" {
			s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents, MaxEvents: traceMaxEvents})
		}

		logrus.Infof("Starting simulation: rate=%v/s, service=%d ticks, buffer=%d, ticks=%d, seed=%d, mode=%s",
			cfg.ArrivalRate, s.ServiceTime(), cfg.BufferSize, cfg.Ticks, cfg.Seed, cfg.Mode)

		startTime := time.Now()
		s.Run()
		report := s.Report()

		out := cmd.OutOrStdout()
		if err := report.Write(out, sim.OutputFormat(outputFormat)); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		if outputFormat == "" || outputFormat == string(sim.OutputText) {
			sim.PrintElapsed(out, startTime)
			if compare {
				printPrediction(out, cfg)
			}
		}

		if traceFile != "" {
			writeTrace(s.Trace, traceFile)
		}
		if metricsTextfile != "" {
			if err := export.WriteTextfile(metricsTextfile, report); err != nil {
				logrus.Fatalf("Failed to export metrics: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

func writeTrace(st *trace.SimulationTrace, path string) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Error creating trace file %s: %v", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logrus.Fatalf("Error closing trace file %s: %v", path, closeErr)
		}
	}()
	if err := st.WriteJSONLines(f); err != nil {
		logrus.Fatalf("Error writing trace file %s: %v", path, err)
	}
	summary := trace.Summarize(st)
	logrus.Infof("Trace: %d arrivals (%d lost), %d departures, sojourn min/mean/max = %d/%.2f/%d ticks, %d events dropped",
		summary.TotalArrivals, summary.LostCount, summary.Departures,
		summary.MinSojourn, summary.MeanSojourn, summary.MaxSojourn, st.Dropped)
}

// prediction solves the unbounded M/D/1 model in tick units.
func prediction(cfg sim.Config) *analytic.MD1 {
	return analytic.NewMD1(cfg.ArrivalRate/cfg.TicksPerSecond, float64(cfg.ServiceTime()))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addConfigFlags(runCmd.Flags())
	runCmd.Flags().StringVar(&outputFormat, "output", "text", "Report format (text, json, yaml)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write every arrival, loss and departure as JSON lines to this file")
	runCmd.Flags().IntVar(&traceMaxEvents, "trace-max-events", 1_000_000, "Maximum number of trace events kept in memory (0 = no cap)")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write final metrics in Prometheus textfile format to this path")
	runCmd.Flags().BoolVar(&compare, "compare", false, "Print closed-form M/D/1 predictions alongside the simulated metrics")

	rootCmd.AddCommand(runCmd)
}
