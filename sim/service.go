package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/packet-sim/md1k/sim/trace"
)

// advance runs the deterministic server for one tick:
//  1. an empty queue at entry counts the tick as idle
//  2. the in-service packet departs if its transmission completes now
//  3. a free server with a non-empty queue starts the head packet
//
// Steps 2 and 3 may both fire on the same tick, giving back-to-back service.
func (sim *Simulator) advance(tick int64) {
	if sim.Queue.Len() == 0 {
		sim.Stats.IdleTicks++
	} else {
		sim.Stats.BusyTicks++
	}

	if sim.InService && tick == sim.NextTransmitComplete {
		sim.depart(tick)
	}

	if !sim.InService && sim.Queue.Len() > 0 {
		if tick < sim.NextTransmitComplete {
			panic(fmt.Sprintf("advance: server idle at tick %d before previous completion %d", tick, sim.NextTransmitComplete))
		}
		sim.NextDeparture = tick
		sim.NextTransmitComplete = saturatingAdd(sim.NextDeparture, sim.serviceTime)
		sim.InService = true
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			p, _, _ := sim.Queue.Peek()
			logrus.Tracef("[tick %07d] %s starts transmission, completes at %d", tick, p, sim.NextTransmitComplete)
		}
	}
}

func (sim *Simulator) depart(tick int64) {
	p, arrivedAt := sim.Queue.Dequeue()
	sojourn := tick - arrivedAt
	if sojourn < sim.serviceTime {
		panic(fmt.Sprintf("depart: %s sojourn %d shorter than service time %d", p, sojourn, sim.serviceTime))
	}
	sim.Stats.recordSojourn(sojourn)
	sim.InService = false
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("[tick %07d] %s departing after %d ticks", tick, p, sojourn)
	}
	sim.record(trace.EventRecord{Kind: trace.KindDeparture, PacketID: p.ID, Clock: tick, QueueLen: sim.Queue.Len(), Sojourn: sojourn})
}
