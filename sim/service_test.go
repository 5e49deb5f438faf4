package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance_EmptyQueue_CountsIdle(t *testing.T) {
	s := mustSimulator(t, unitConfig(3, Unbounded, 10), gapSource(5))
	s.advance(0)
	s.advance(1)
	assert.Equal(t, int64(2), s.Stats.IdleTicks)
	assert.Zero(t, s.Stats.BusyTicks)
	assert.False(t, s.InService)
}

func TestAdvance_StartsServiceOnSameTick(t *testing.T) {
	// GIVEN a packet admitted at tick 4 to an idle server
	s := mustSimulator(t, unitConfig(3, Unbounded, 10), gapSource(1))
	s.Queue.Enqueue(Packet{ID: 0}, 4)

	// WHEN the server runs at tick 4
	s.advance(4)

	// THEN transmission starts now and completes service-time ticks later
	assert.True(t, s.InService)
	assert.Equal(t, int64(4), s.NextDeparture)
	assert.Equal(t, int64(7), s.NextTransmitComplete)
	assert.Equal(t, int64(1), s.Stats.BusyTicks)
}

func TestAdvance_CompletionAndNextStart_SameTick(t *testing.T) {
	// GIVEN two resident packets, the head in service until tick 7
	s := mustSimulator(t, unitConfig(3, Unbounded, 10), gapSource(1))
	s.Queue.Enqueue(Packet{ID: 0}, 4)
	s.Queue.Enqueue(Packet{ID: 1}, 5)
	s.advance(4)

	// WHEN the server runs at the completion tick
	s.advance(7)

	// THEN the head departs and the next packet starts with no gap
	assert.Equal(t, int64(1), s.Stats.Departed)
	assert.Equal(t, 1, s.Queue.Len())
	assert.True(t, s.InService)
	assert.Equal(t, int64(7), s.NextDeparture)
	assert.Equal(t, int64(10), s.NextTransmitComplete)
	assert.Equal(t, 3.0, s.Stats.SojournSum.Float64())
}

func TestAdvance_CompletionEmptiesQueue_FiresOnce(t *testing.T) {
	s := mustSimulator(t, unitConfig(2, Unbounded, 10), gapSource(1))
	s.Queue.Enqueue(Packet{ID: 0}, 1)
	s.advance(1)

	s.advance(3)
	s.advance(3)

	assert.Equal(t, int64(1), s.Stats.Departed)
	assert.False(t, s.InService)
	assert.Equal(t, 0, s.Queue.Len())
}

func TestAdvance_InitialCompletionTick_DoesNotDepartIdleServer(t *testing.T) {
	// GIVEN a fresh simulator whose completion clock starts at the first arrival
	s := mustSimulator(t, unitConfig(3, Unbounded, 10), gapSource(2))
	assert.Equal(t, int64(2), s.NextTransmitComplete)

	// WHEN the first packet arrives and the server runs on that tick
	s.maybeAdmit(2)
	s.advance(2)

	// THEN it starts service rather than departing with zero sojourn
	assert.Zero(t, s.Stats.Departed)
	assert.Equal(t, int64(5), s.NextTransmitComplete)
}
