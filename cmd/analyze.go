package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/packet-sim/md1k/sim"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print closed-form M/D/1 predictions for a configuration",
	Long:  "Solve the unbounded M/D/1 queue with the Pollaczek-Khinchine formula for the configured arrival rate and service time. Buffer size is ignored.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd.Flags(), newEnv())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		printPrediction(cmd.OutOrStdout(), cfg)
	},
}

func printPrediction(w io.Writer, cfg sim.Config) {
	m := prediction(cfg)
	fmt.Fprintln(w, "=== M/D/1 Prediction ===")
	fmt.Fprintf(w, "Service Time         : %d ticks\n", cfg.ServiceTime())
	fmt.Fprintf(w, "Offered Load (rho)   : %.4f\n", m.GetRho())
	if !m.IsValid() {
		fmt.Fprintln(w, "Queue is unstable (rho >= 1); no steady state")
		return
	}
	fmt.Fprintf(w, "E[N]                 : %.6f\n", m.GetAvgNumInSystem())
	fmt.Fprintf(w, "E[T]                 : %.2f ticks\n", m.GetAvgRespTime())
	fmt.Fprintf(w, "P_idle               : %.6f\n", m.GetIdleProbability())
	if cfg.Bounded() {
		fmt.Fprintln(w, "Note: prediction assumes an unbounded buffer")
	}
}

func init() {
	addConfigFlags(analyzeCmd.Flags())
	rootCmd.AddCommand(analyzeCmd)
}
