package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if *summary != (TraceSummary{}) {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalArrivals != 0 || summary.Departures != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.MeanSojourn != 0 {
		t.Errorf("expected zero mean sojourn, got %v", summary.MeanSojourn)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with admissions, a loss and two departures
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.Record(EventRecord{Kind: KindAdmit, PacketID: 0, Clock: 1, QueueLen: 1})
	st.Record(EventRecord{Kind: KindAdmit, PacketID: 1, Clock: 2, QueueLen: 2})
	st.Record(EventRecord{Kind: KindLoss, PacketID: 2, Clock: 3, QueueLen: 2})
	st.Record(EventRecord{Kind: KindDeparture, PacketID: 0, Clock: 5, QueueLen: 1, Sojourn: 4})
	st.Record(EventRecord{Kind: KindDeparture, PacketID: 1, Clock: 9, QueueLen: 0, Sojourn: 7})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and sojourn statistics match
	if summary.TotalArrivals != 3 || summary.AdmittedCount != 2 || summary.LostCount != 1 {
		t.Errorf("arrival counts: got %+v", summary)
	}
	if summary.Departures != 2 {
		t.Errorf("departures: got %d, want 2", summary.Departures)
	}
	if summary.MinSojourn != 4 || summary.MaxSojourn != 7 {
		t.Errorf("sojourn range: got [%d, %d], want [4, 7]", summary.MinSojourn, summary.MaxSojourn)
	}
	if summary.MeanSojourn != 5.5 {
		t.Errorf("mean sojourn: got %v, want 5.5", summary.MeanSojourn)
	}
	if summary.MaxQueueLen != 2 {
		t.Errorf("max queue len: got %d, want 2", summary.MaxQueueLen)
	}
}
