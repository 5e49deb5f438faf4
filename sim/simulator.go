// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/packet-sim/md1k/sim/trace"
)

// Simulator is the core object that holds the clock, the router buffer,
// the server state and the accumulators for one run.
type Simulator struct {
	Config Config
	Clock  int64
	// Queue holds resident packets; the head is the one in service.
	Queue *PacketQueue
	// NextArrival is the single scheduled arrival tick.
	NextArrival int64
	// NextDeparture is the tick at which the in-service packet started.
	NextDeparture int64
	// NextTransmitComplete is the tick at which the in-service packet departs.
	NextTransmitComplete int64
	// InService is true while the server is transmitting the head packet.
	InService bool
	Stats     Accumulators
	// Trace records per-event data when non-nil and at TraceLevelEvents.
	Trace *trace.SimulationTrace

	InitialArrival   int64
	InitialDeparture int64

	serviceTime int64
	rng         UniformSource
	ran         bool
}

// NewSimulator validates cfg and seeds the arrival stream from cfg.Seed.
func NewSimulator(cfg Config) (*Simulator, error) {
	return NewSimulatorWithSource(cfg, NewMTSource(cfg.Seed))
}

// NewSimulatorWithSource is NewSimulator with an explicit uniform source.
// The first interarrival gap is drawn here, so the first arrival is at tick
// gap and the departure clock starts there too.
func NewSimulatorWithSource(cfg Config, src UniformSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: uniform source must not be nil", ErrInvalidConfig)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeTick
	}
	if cfg.Order == "" {
		cfg.Order = OrderArrivalFirst
	}
	s := &Simulator{
		Config:      cfg,
		Queue:       &PacketQueue{},
		serviceTime: cfg.ServiceTime(),
		rng:         src,
	}
	s.NextArrival = s.drawGap()
	s.NextDeparture = s.NextArrival
	s.NextTransmitComplete = s.NextArrival
	s.InitialArrival = s.NextArrival
	s.InitialDeparture = s.NextDeparture
	return s, nil
}

// ServiceTime returns the deterministic transmission time in ticks.
func (sim *Simulator) ServiceTime() int64 {
	return sim.serviceTime
}

// Step executes one tick: sample, then the arrival and service processes
// in the configured order.
func (sim *Simulator) Step(tick int64) {
	sim.Clock = tick
	sim.Stats.Sample(sim.Queue.Len())
	if sim.Config.Order == OrderDepartureFirst {
		sim.advance(tick)
		sim.maybeAdmit(tick)
	} else {
		sim.maybeAdmit(tick)
		sim.advance(tick)
	}
	sim.checkBuffer()
}

// Run drives the simulation from tick 0 to Config.Ticks (exclusive).
// A Simulator runs once; calling Run again panics.
func (sim *Simulator) Run() {
	if sim.ran {
		panic("Run: simulator already ran")
	}
	sim.ran = true

	logrus.Infof("Arrival tick: %d", sim.InitialArrival)
	logrus.Infof("Departure tick: %d", sim.InitialDeparture)
	logrus.Infof("Total ticks: %d", sim.Config.Ticks)

	if sim.Config.Mode == ModeSkip {
		sim.runSkipping()
	} else {
		for t := int64(0); t < sim.Config.Ticks; t++ {
			sim.Step(t)
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// runSkipping evaluates only ticks on which an arrival or service event is
// due. Between two such ticks the queue length and idle state cannot change,
// so the skipped span is accounted in one go.
func (sim *Simulator) runSkipping() {
	end := sim.Config.Ticks
	for t := int64(0); t < end; {
		next := min(sim.nextEventTick(t), end)
		if n := next - t; n > 0 {
			qlen := sim.Queue.Len()
			sim.Stats.sampleSpan(qlen, n)
			if qlen == 0 {
				sim.Stats.IdleTicks += n
			} else {
				sim.Stats.BusyTicks += n
			}
			sim.Clock = next - 1
			t = next
		}
		if t < end {
			sim.Step(t)
			t++
		}
	}
}

func (sim *Simulator) nextEventTick(now int64) int64 {
	next := sim.NextArrival
	if sim.InService {
		next = min(next, sim.NextTransmitComplete)
	} else if sim.Queue.Len() > 0 {
		// a packet admitted after the server acted starts on the next tick
		return now
	}
	if next < now {
		panic(fmt.Sprintf("nextEventTick: event at %d is behind the clock %d", next, now))
	}
	return next
}

func (sim *Simulator) checkBuffer() {
	if sim.Config.Bounded() && int64(sim.Queue.Len()) > sim.Config.BufferSize {
		panic(fmt.Sprintf("buffer holds %d packets, capacity %d", sim.Queue.Len(), sim.Config.BufferSize))
	}
	if sim.InService && sim.NextTransmitComplete < sim.NextDeparture {
		panic(fmt.Sprintf("transmission completes at %d before it starts at %d", sim.NextTransmitComplete, sim.NextDeparture))
	}
}

func (sim *Simulator) record(ev trace.EventRecord) {
	if sim.Trace != nil && sim.Trace.Config.Level == trace.TraceLevelEvents {
		sim.Trace.Record(ev)
	}
}

// Report reduces the accumulators into the run's metrics.
func (sim *Simulator) Report() *Report {
	return &Report{
		Config:           sim.Config,
		ServiceTime:      sim.serviceTime,
		Utilization:      sim.Config.Utilization(),
		InitialArrival:   sim.InitialArrival,
		InitialDeparture: sim.InitialDeparture,
		Attempted:        sim.Stats.Attempted,
		Admitted:         sim.Stats.Admitted,
		Lost:             sim.Stats.Lost,
		Departed:         sim.Stats.Departed,
		Resident:         int64(sim.Queue.Len()),
		IdleTicks:        sim.Stats.IdleTicks,
		BusyTicks:        sim.Stats.BusyTicks,
		Estimates:        sim.Stats.Reduce(sim.Config.Ticks, sim.Config.Bounded()),
	}
}
