// Formats the final metrics of a run for humans and machines.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the reduced, immutable outcome of one run.
type Report struct {
	Config           Config  `json:"config" yaml:"config"`
	ServiceTime      int64   `json:"service_time_ticks" yaml:"service_time_ticks"`
	Utilization      float64 `json:"utilization" yaml:"utilization"`
	InitialArrival   int64   `json:"initial_arrival_tick" yaml:"initial_arrival_tick"`
	InitialDeparture int64   `json:"initial_departure_tick" yaml:"initial_departure_tick"`

	Attempted int64 `json:"attempted" yaml:"attempted"`
	Admitted  int64 `json:"admitted" yaml:"admitted"`
	Lost      int64 `json:"lost" yaml:"lost"`
	Departed  int64 `json:"departed" yaml:"departed"`
	Resident  int64 `json:"resident" yaml:"resident"` // still queued when the run ended
	IdleTicks int64 `json:"idle_ticks" yaml:"idle_ticks"`
	BusyTicks int64 `json:"busy_ticks" yaml:"busy_ticks"`

	Estimates Estimates `json:"estimates" yaml:"estimates"`
}

// OutputFormat selects how a Report is written.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// IsValidOutputFormat returns true for text, json, yaml and the empty string.
func IsValidOutputFormat(f string) bool {
	switch OutputFormat(f) {
	case "", OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}

// Write renders the report in the requested format.
func (r *Report) Write(w io.Writer, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report as json: %w", err)
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report as yaml: %w", err)
		}
		return nil
	default:
		r.Print(w)
		return nil
	}
}

// Print displays the four metrics, preceded by the configuration echo
// (initial arrival and departure ticks, run length) and the run counters.
// P_loss is printed only for a bounded buffer.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Arrival Tick         : %d\n", r.InitialArrival)
	fmt.Fprintf(w, "Departure Tick       : %d\n", r.InitialDeparture)
	fmt.Fprintf(w, "Total Ticks          : %d\n", r.Config.Ticks)
	fmt.Fprintf(w, "Service Time         : %d ticks\n", r.ServiceTime)
	fmt.Fprintf(w, "Offered Load (rho)   : %.4f\n", r.Utilization)
	fmt.Fprintf(w, "Packets Attempted    : %d\n", r.Attempted)
	fmt.Fprintf(w, "Packets Admitted     : %d\n", r.Admitted)
	if r.Config.Bounded() {
		fmt.Fprintf(w, "Packets Lost         : %d\n", r.Lost)
	}
	fmt.Fprintf(w, "Packets Departed     : %d\n", r.Departed)
	fmt.Fprintf(w, "E[N]                 : %s\n", formatEstimate(r.Estimates.MeanQueueLength, "%.6f"))
	fmt.Fprintf(w, "E[T]                 : %s\n", formatEstimate(r.Estimates.MeanSojourn, "%.2f ticks"))
	fmt.Fprintf(w, "P_idle               : %s\n", formatEstimate(r.Estimates.IdleProbability, "%.6f"))
	if r.Config.Bounded() {
		fmt.Fprintf(w, "P_loss               : %s\n", formatEstimate(r.Estimates.LossProbability, "%.6f"))
	}
}

// PrintElapsed appends the wall-clock duration of the run.
func PrintElapsed(w io.Writer, startTime time.Time) {
	fmt.Fprintf(w, "Simulation Duration  : %s\n", time.Since(startTime).Round(time.Millisecond))
}

func formatEstimate(e Estimate, format string) string {
	if !e.Defined {
		return "undefined (no samples)"
	}
	return fmt.Sprintf(format, e.Value)
}
