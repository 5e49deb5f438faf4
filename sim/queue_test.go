package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacketQueue_FIFO_KeepsArrivalsInLockStep(t *testing.T) {
	// GIVEN a queue with packets 0, 1, 2 arriving at ticks 5, 7, 9
	pq := &PacketQueue{}
	pq.Enqueue(Packet{ID: 0}, 5)
	pq.Enqueue(Packet{ID: 1}, 7)
	pq.Enqueue(Packet{ID: 2}, 9)

	// WHEN all packets are dequeued
	var ids, ticks []int64
	for pq.Len() > 0 {
		p, at := pq.Dequeue()
		ids = append(ids, p.ID)
		ticks = append(ticks, at)
	}

	// THEN they come out in arrival order with their own timestamps
	assert.Equal(t, []int64{0, 1, 2}, ids)
	assert.Equal(t, []int64{5, 7, 9}, ticks)
}

func TestPacketQueue_Peek_NonEmpty_ReturnsHead(t *testing.T) {
	pq := &PacketQueue{}
	pq.Enqueue(Packet{ID: 3}, 11)
	pq.Enqueue(Packet{ID: 4}, 12)

	p, at, ok := pq.Peek()

	assert.True(t, ok)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, int64(11), at)
	assert.Equal(t, 2, pq.Len(), "Peek must not remove")
}

func TestPacketQueue_Peek_Empty(t *testing.T) {
	pq := &PacketQueue{}
	_, _, ok := pq.Peek()
	assert.False(t, ok)
}

func TestPacketQueue_Dequeue_Empty_Panics(t *testing.T) {
	pq := &PacketQueue{}
	assert.PanicsWithValue(t, "Dequeue: queue underflow", func() { pq.Dequeue() })
}

func TestPacketQueue_String(t *testing.T) {
	pq := &PacketQueue{}
	pq.Enqueue(Packet{ID: 1}, 10)
	pq.Enqueue(Packet{ID: 2}, 20)
	assert.Equal(t, "[pkt_1@10 pkt_2@20]", pq.String())
}
