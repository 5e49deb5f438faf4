package trace

import (
	"encoding/json"
	"fmt"
	"io"
)

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every arrival, loss and departure.
	TraceLevelEvents TraceLevel = "events"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// MaxEvents caps the number of stored records; 0 means no cap.
	// Records past the cap are counted in Dropped.
	MaxEvents int
}

// SimulationTrace collects event records in the order they occur.
type SimulationTrace struct {
	Config  TraceConfig
	Events  []EventRecord
	Dropped int64
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// Record appends an event record, honoring MaxEvents.
func (st *SimulationTrace) Record(record EventRecord) {
	if st.Config.MaxEvents > 0 && len(st.Events) >= st.Config.MaxEvents {
		st.Dropped++
		return
	}
	st.Events = append(st.Events, record)
}

// WriteJSONLines writes one JSON object per event.
func (st *SimulationTrace) WriteJSONLines(w io.Writer) error {
	enc := json.NewEncoder(w)
	for i, ev := range st.Events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("writing trace event %d: %w", i, err)
		}
	}
	return nil
}
