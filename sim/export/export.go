// Package export publishes a finished run's metrics in Prometheus text format.
package export

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/packet-sim/md1k/sim"
)

// RegisterReport registers gauges describing r with the provided registry.
// Undefined estimates are not exported.
func RegisterReport(registry prometheus.Registerer, r *sim.Report) error {
	packets := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "md1k_packets_total",
			Help: "Packets seen during the run, by outcome",
		},
		[]string{"outcome"},
	)
	packets.WithLabelValues("attempted").Set(float64(r.Attempted))
	packets.WithLabelValues("admitted").Set(float64(r.Admitted))
	packets.WithLabelValues("lost").Set(float64(r.Lost))
	packets.WithLabelValues("departed").Set(float64(r.Departed))

	ticks := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "md1k_ticks_total",
			Help: "Simulated ticks, by server state",
		},
		[]string{"state"},
	)
	ticks.WithLabelValues("idle").Set(float64(r.IdleTicks))
	ticks.WithLabelValues("busy").Set(float64(r.BusyTicks))

	collectors := []prometheus.Collector{packets, ticks}
	estimates := []struct {
		name, help string
		est        sim.Estimate
	}{
		{"md1k_mean_queue_length", "Time-averaged number of packets in the router (E[N])", r.Estimates.MeanQueueLength},
		{"md1k_mean_sojourn_ticks", "Mean sojourn time per admitted packet in ticks (E[T])", r.Estimates.MeanSojourn},
		{"md1k_idle_probability", "Fraction of ticks with an empty router (P_idle)", r.Estimates.IdleProbability},
		{"md1k_loss_probability", "Fraction of arrivals lost to a full buffer (P_loss)", r.Estimates.LossProbability},
	}
	for _, e := range estimates {
		if !e.est.Defined {
			continue
		}
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: e.name, Help: e.help})
		g.Set(e.est.Value)
		collectors = append(collectors, g)
	}

	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("registering run metrics: %w", err)
		}
	}
	return nil
}

// WriteTextfile writes r to path in the node_exporter textfile format.
func WriteTextfile(path string, r *sim.Report) error {
	registry := prometheus.NewRegistry()
	if err := RegisterReport(registry, r); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
