// Implements the PacketQueue, which holds every packet resident at the router:
// the one in service at the head and the ones waiting behind it.

package sim

import (
	"fmt"
	"strings"
)

// Packet is a unit of work admitted to the router buffer.
// Its arrival tick lives in the queue's parallel timestamp sequence.
type Packet struct {
	ID int64 // monotonically increasing sequence number, assigned on arrival
}

func (p Packet) String() string {
	return fmt.Sprintf("pkt_%d", p.ID)
}

// PacketQueue is a FIFO of resident packets with a lock-step sequence of
// their arrival ticks, so the head packet's arrival is always retrievable.
type PacketQueue struct {
	packets  []Packet
	arrivals []int64
}

// Enqueue adds a packet that arrived at tick to the back of the queue.
func (pq *PacketQueue) Enqueue(p Packet, tick int64) {
	pq.packets = append(pq.packets, p)
	pq.arrivals = append(pq.arrivals, tick)
	pq.checkLockStep("Enqueue")
}

// Dequeue removes the head packet and returns it with its arrival tick.
// Dequeue on an empty queue is a logic defect and panics.
func (pq *PacketQueue) Dequeue() (Packet, int64) {
	if len(pq.packets) == 0 {
		panic("Dequeue: queue underflow")
	}
	p, at := pq.packets[0], pq.arrivals[0]
	pq.packets = pq.packets[1:]
	pq.arrivals = pq.arrivals[1:]
	pq.checkLockStep("Dequeue")
	return p, at
}

// Len returns the number of resident packets, including the one in service.
func (pq *PacketQueue) Len() int {
	return len(pq.packets)
}

// Peek returns the head packet and its arrival tick without removing it.
// ok is false when the queue is empty.
func (pq *PacketQueue) Peek() (p Packet, arrival int64, ok bool) {
	if len(pq.packets) == 0 {
		return Packet{}, 0, false
	}
	return pq.packets[0], pq.arrivals[0], true
}

func (pq *PacketQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range pq.packets {
		fmt.Fprintf(&sb, "%s@%d", p, pq.arrivals[i])
		if i < len(pq.packets)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

func (pq *PacketQueue) checkLockStep(op string) {
	if len(pq.packets) != len(pq.arrivals) {
		panic(fmt.Sprintf("%s: packet queue holds %d packets but %d arrival ticks", op, len(pq.packets), len(pq.arrivals)))
	}
}
