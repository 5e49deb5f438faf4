package sim

import (
	"math"
	"math/bits"
)

// wideSum is an exact 128-bit unsigned accumulator. Runs of up to 5e9 ticks
// with deep queues can push a 64-bit sum of queue lengths or sojourn times
// past 2^64, so the carry goes into hi instead of wrapping.
type wideSum struct {
	hi, lo uint64
}

func (w *wideSum) add(v uint64) {
	var carry uint64
	w.lo, carry = bits.Add64(w.lo, v, 0)
	w.hi += carry
}

// addProduct adds v*n, used when many ticks share the same sample.
func (w *wideSum) addProduct(v, n uint64) {
	hi, lo := bits.Mul64(v, n)
	var carry uint64
	w.lo, carry = bits.Add64(w.lo, lo, 0)
	w.hi += hi + carry
}

// Float64 converts the sum for reporting.
func (w wideSum) Float64() float64 {
	return float64(w.hi)*math.Exp2(64) + float64(w.lo)
}

// Accumulators holds the running totals of a run.
// Every field is monotonically non-decreasing.
type Accumulators struct {
	QueueLengthSum wideSum // one sample of Len() per tick
	SojournSum     wideSum // one sample per departure
	IdleTicks      int64   // ticks where the queue was empty at service entry
	BusyTicks      int64   // ticks where the queue was non-empty at service entry
	Attempted      int64   // scheduled arrivals
	Admitted       int64
	Lost           int64
	Departed       int64
	SampledTicks   int64
}

// Sample records the queue length for a single tick.
func (a *Accumulators) Sample(queueLen int) {
	a.QueueLengthSum.add(uint64(queueLen))
	a.SampledTicks++
}

// sampleSpan records n consecutive ticks that all saw queueLen packets.
func (a *Accumulators) sampleSpan(queueLen int, n int64) {
	a.QueueLengthSum.addProduct(uint64(queueLen), uint64(n))
	a.SampledTicks += n
}

func (a *Accumulators) recordSojourn(ticks int64) {
	if ticks < 0 {
		panic("recordSojourn: negative sojourn time")
	}
	a.SojournSum.add(uint64(ticks))
	a.Departed++
}

// Estimate is a reduced metric. Defined is false when the metric is a mean
// over zero samples, in which case Value is zero and must not be used.
type Estimate struct {
	Value   float64 `json:"value" yaml:"value"`
	Defined bool    `json:"defined" yaml:"defined"`
}

func ratio(num, den float64) Estimate {
	if den == 0 {
		return Estimate{}
	}
	return Estimate{Value: num / den, Defined: true}
}

// Estimates are the four reported performance metrics.
type Estimates struct {
	MeanQueueLength Estimate `json:"mean_queue_length" yaml:"mean_queue_length"` // E[N]
	MeanSojourn     Estimate `json:"mean_sojourn_ticks" yaml:"mean_sojourn_ticks"` // E[T], in ticks
	IdleProbability Estimate `json:"idle_probability" yaml:"idle_probability"`     // P_idle
	LossProbability Estimate `json:"loss_probability" yaml:"loss_probability"`     // P_loss, bounded buffers only
}

// Reduce turns the accumulators into the reported metrics.
// totalTicks is the run length. E[T] is undefined until a packet departs,
// and P_loss is left undefined unless bounded.
func (a *Accumulators) Reduce(totalTicks int64, bounded bool) Estimates {
	est := Estimates{
		MeanQueueLength: ratio(a.QueueLengthSum.Float64(), float64(totalTicks)),
		IdleProbability: ratio(float64(a.IdleTicks), float64(totalTicks)),
	}
	// E[T] needs at least one completed sojourn.
	if a.Departed > 0 {
		est.MeanSojourn = ratio(a.SojournSum.Float64(), float64(a.Admitted))
	}
	if bounded {
		est.LossProbability = ratio(float64(a.Lost), float64(a.Attempted))
	}
	return est
}
