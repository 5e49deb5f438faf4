// Package trace provides per-event recording for a single router run.
// It has no dependencies on sim/ and stores pure data types.
package trace

// EventKind names what happened to a packet.
type EventKind string

const (
	// KindAdmit is an arrival that entered the buffer.
	KindAdmit EventKind = "admit"
	// KindLoss is an arrival rejected because the buffer was full.
	KindLoss EventKind = "loss"
	// KindDeparture is a completed transmission.
	KindDeparture EventKind = "departure"
)

// EventRecord captures a single arrival or departure.
type EventRecord struct {
	Kind     EventKind `json:"kind"`
	PacketID int64     `json:"packet"`
	Clock    int64     `json:"tick"`
	QueueLen int       `json:"queue_len"`         // queue length after the event
	Sojourn  int64     `json:"sojourn,omitempty"` // departures only
}
