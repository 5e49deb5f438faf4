package sim

import (
	"math"
	"testing"

	"github.com/packet-sim/md1k/sim/trace"
)

// scriptedSource replays a fixed sequence of uniform draws, cycling.
type scriptedSource struct {
	vals  []float64
	calls int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	return v
}

// drawFor returns the uniform draw that yields an interarrival gap of g ticks
// when rate = 1 and ticks_per_second = 1.
func drawFor(g int64) float64 {
	return 1 - math.Exp(-(float64(g) - 0.5))
}

// gapSource always produces the same gap.
func gapSource(g int64) *scriptedSource {
	return &scriptedSource{vals: []float64{drawFor(g)}}
}

// unitConfig uses one tick per second and a unit-rate arrival process,
// so service time equals packetLength ticks.
func unitConfig(serviceTicks int64, buffer int64, ticks int64) Config {
	return Config{
		ArrivalRate:    1,
		PacketLength:   float64(serviceTicks),
		LinkCapacity:   1,
		BufferSize:     buffer,
		Ticks:          ticks,
		TicksPerSecond: 1,
		Seed:           DefaultSeed,
		Mode:           ModeTick,
		Order:          OrderArrivalFirst,
	}
}

func mustSimulator(t *testing.T, cfg Config, src UniformSource) *Simulator {
	t.Helper()
	s, err := NewSimulatorWithSource(cfg, src)
	if err != nil {
		t.Fatalf("NewSimulatorWithSource: %v", err)
	}
	return s
}

func mustSeededSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func withTrace(s *Simulator) *Simulator {
	s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	return s
}
