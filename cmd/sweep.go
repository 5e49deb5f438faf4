package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/packet-sim/md1k/sim"
)

var (
	sweepRates        []float64 // arrival rates to simulate
	sweepReplications int       // seeds per rate
	sweepParallelism  int       // concurrent runs
)

// sweepPoint is the spread of one metric across replications.
type sweepPoint struct {
	Mean    float64
	StdDev  float64
	Samples int // replications where the metric was defined
}

// sweepRow summarizes all replications of one arrival rate.
type sweepRow struct {
	Rate            float64
	Utilization     float64
	MeanQueueLength sweepPoint
	MeanSojourn     sweepPoint
	IdleProbability sweepPoint
	LossProbability sweepPoint
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the simulation over several arrival rates and seeds",
	Long:  "Run one simulation per (rate, replication) pair. Replication i uses seed+i. Runs are independent and execute in parallel; each run is single-threaded.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(sweepRates) == 0 {
			logrus.Fatalf("at least one --rates value is required")
		}
		if sweepReplications < 1 {
			logrus.Fatalf("--replications must be >= 1, got %d", sweepReplications)
		}
		base, err := resolveConfig(cmd.Flags(), newEnv())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		reports, err := runSweep(cmd.Context(), base, sweepRates, sweepReplications, sweepParallelism)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(cmd.OutOrStdout(), summarizeSweep(sweepRates, reports))
	},
}

// runSweep returns reports indexed [rate][replication].
func runSweep(ctx context.Context, base sim.Config, rates []float64, replications, parallelism int) ([][]*sim.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([][]*sim.Report, len(rates))
	for i := range reports {
		reports[i] = make([]*sim.Report, replications)
	}

	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, rate := range rates {
		for rep := 0; rep < replications; rep++ {
			cfg := base
			cfg.ArrivalRate = rate
			cfg.Seed = base.Seed + int64(rep)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, err := sim.NewSimulator(cfg)
				if err != nil {
					return fmt.Errorf("rate %v seed %d: %w", cfg.ArrivalRate, cfg.Seed, err)
				}
				s.Run()
				reports[i][rep] = s.Report()
				logrus.Debugf("sweep: rate=%v seed=%d done", cfg.ArrivalRate, cfg.Seed)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func summarizeSweep(rates []float64, reports [][]*sim.Report) []sweepRow {
	rows := make([]sweepRow, len(rates))
	for i, rate := range rates {
		row := sweepRow{Rate: rate}
		if len(reports[i]) > 0 {
			row.Utilization = reports[i][0].Utilization
		}
		collect := func(get func(*sim.Report) sim.Estimate) sweepPoint {
			var vals []float64
			for _, r := range reports[i] {
				if e := get(r); e.Defined {
					vals = append(vals, e.Value)
				}
			}
			return spread(vals)
		}
		row.MeanQueueLength = collect(func(r *sim.Report) sim.Estimate { return r.Estimates.MeanQueueLength })
		row.MeanSojourn = collect(func(r *sim.Report) sim.Estimate { return r.Estimates.MeanSojourn })
		row.IdleProbability = collect(func(r *sim.Report) sim.Estimate { return r.Estimates.IdleProbability })
		row.LossProbability = collect(func(r *sim.Report) sim.Estimate { return r.Estimates.LossProbability })
		rows[i] = row
	}
	return rows
}

func spread(vals []float64) sweepPoint {
	switch len(vals) {
	case 0:
		return sweepPoint{}
	case 1:
		return sweepPoint{Mean: vals[0], Samples: 1}
	}
	mean, std := stat.MeanStdDev(vals, nil)
	return sweepPoint{Mean: mean, StdDev: std, Samples: len(vals)}
}

func printSweep(w io.Writer, rows []sweepRow) {
	fmt.Fprintln(w, "=== Sweep Results (mean ± std dev across seeds) ===")
	fmt.Fprintf(w, "%-12s %-8s %-22s %-26s %-22s %-22s\n", "rate", "rho", "E[N]", "E[T] (ticks)", "P_idle", "P_loss")
	for _, row := range rows {
		fmt.Fprintf(w, "%-12g %-8.4f %-22s %-26s %-22s %-22s\n",
			row.Rate, row.Utilization,
			formatPoint(row.MeanQueueLength, "%.6f"),
			formatPoint(row.MeanSojourn, "%.2f"),
			formatPoint(row.IdleProbability, "%.6f"),
			formatPoint(row.LossProbability, "%.6f"))
	}
}

func formatPoint(p sweepPoint, format string) string {
	if p.Samples == 0 {
		return "-"
	}
	return fmt.Sprintf(format+" ± "+format, p.Mean, p.StdDev)
}

func init() {
	addConfigFlags(sweepCmd.Flags())
	sweepCmd.Flags().Float64SliceVar(&sweepRates, "rates", nil, "Comma-separated arrival rates (packets per second)")
	sweepCmd.Flags().IntVar(&sweepReplications, "replications", 3, "Number of seeds per rate (seed, seed+1, ...)")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallelism", runtime.GOMAXPROCS(0), "Maximum concurrent runs (0 = unlimited)")
	_ = sweepCmd.MarkFlagRequired("rates")

	rootCmd.AddCommand(sweepCmd)
}
