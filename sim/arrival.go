package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/packet-sim/md1k/sim/trace"
)

// ExponentialGap draws one interarrival gap in ticks by inverse-transform
// sampling: -(1/λ)·ln(1-u)·ticksPerSecond, truncated, plus one tick so the
// arrival stream always moves forward.
func ExponentialGap(src UniformSource, rate, ticksPerSecond float64) int64 {
	u := src.Float64()
	if !(u >= 0 && u < 1) {
		panic(fmt.Sprintf("ExponentialGap: uniform draw %v outside [0,1)", u))
	}
	gap := -math.Log1p(-u) / rate * ticksPerSecond
	if gap >= math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	return int64(gap) + 1
}

func (sim *Simulator) drawGap() int64 {
	return ExponentialGap(sim.rng, sim.Config.ArrivalRate, sim.Config.TicksPerSecond)
}

// maybeAdmit handles the arrival scheduled for tick, if any.
// A lost packet still schedules the next arrival.
func (sim *Simulator) maybeAdmit(tick int64) {
	if tick != sim.NextArrival {
		return
	}
	id := sim.Stats.Attempted
	sim.Stats.Attempted++

	if sim.Config.Bounded() && int64(sim.Queue.Len()) >= sim.Config.BufferSize {
		sim.Stats.Lost++
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debugf("[tick %07d] packet %d lost, buffer full (%d)", tick, id, sim.Queue.Len())
		}
		sim.record(trace.EventRecord{Kind: trace.KindLoss, PacketID: id, Clock: tick, QueueLen: sim.Queue.Len()})
	} else {
		sim.Queue.Enqueue(Packet{ID: id}, tick)
		sim.Stats.Admitted++
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debugf("[tick %07d] new packet %d", tick, id)
		}
		sim.record(trace.EventRecord{Kind: trace.KindAdmit, PacketID: id, Clock: tick, QueueLen: sim.Queue.Len()})
	}

	sim.NextArrival = saturatingAdd(sim.NextArrival, sim.drawGap())
}

func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
