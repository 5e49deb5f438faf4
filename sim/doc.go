// Package sim provides the tick-driven simulation engine for an M/D/1/K router.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - queue.go: PacketQueue, the FIFO of resident packets and their arrival ticks
//   - arrival.go: Poisson arrivals by inverse-transform sampling, buffer admission and loss
//   - service.go: the deterministic server (idle/busy) and departures
//   - simulator.go: the driver loop (tick-by-tick, or skipping idle spans)
//   - stats.go: accumulators and their reduction to E[N], E[T], P_idle, P_loss
//
// # Tick Semantics
//
// Every tick samples the queue length first, then runs the arrival process,
// then the service process (the order is configurable through Config.Order).
// A packet admitted to an idle server starts transmission on the same tick
// and departs ServiceTime ticks later; a completion and the next start can
// share a tick.
//
// Sub-packages:
//   - sim/trace/: per-event recording (admit, loss, departure)
//   - sim/analytic/: closed-form M/D/1 predictions for comparison
//   - sim/export/: Prometheus textfile export of a Report
package sim
