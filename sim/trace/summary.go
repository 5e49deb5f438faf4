package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalArrivals int
	AdmittedCount int
	LostCount     int
	Departures    int
	MinSojourn    int64
	MaxSojourn    int64
	MeanSojourn   float64
	MaxQueueLen   int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	var sojournTotal float64
	for _, ev := range st.Events {
		if ev.QueueLen > summary.MaxQueueLen {
			summary.MaxQueueLen = ev.QueueLen
		}
		switch ev.Kind {
		case KindAdmit:
			summary.TotalArrivals++
			summary.AdmittedCount++
		case KindLoss:
			summary.TotalArrivals++
			summary.LostCount++
		case KindDeparture:
			if summary.Departures == 0 || ev.Sojourn < summary.MinSojourn {
				summary.MinSojourn = ev.Sojourn
			}
			if ev.Sojourn > summary.MaxSojourn {
				summary.MaxSojourn = ev.Sojourn
			}
			summary.Departures++
			sojournTotal += float64(ev.Sojourn)
		}
	}

	if summary.Departures > 0 {
		summary.MeanSojourn = sojournTotal / float64(summary.Departures)
	}
	return summary
}
