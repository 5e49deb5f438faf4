// Package testutil provides shared test infrastructure for the md1k simulator.
// It holds the hand-traced golden dataset and assertion helpers used across
// sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is a short run with a constant interarrival gap, small
// enough to trace by hand. Rate and ticks-per-second are both 1, so the
// service time equals ServiceTicks.
type GoldenTestCase struct {
	Name         string        `json:"name"`
	Gap          int64         `json:"gap"`
	ServiceTicks int64         `json:"service_ticks"`
	BufferSize   int64         `json:"buffer_size"`
	Ticks        int64         `json:"ticks"`
	Order        string        `json:"order"`
	Metrics      GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected counters from a golden test case.
type GoldenMetrics struct {
	// Exact match counters
	QueueLengthSum int64 `json:"queue_length_sum"`
	IdleTicks      int64 `json:"idle_ticks"`
	BusyTicks      int64 `json:"busy_ticks"`
	Attempted      int64 `json:"attempted"`
	Admitted       int64 `json:"admitted"`
	Lost           int64 `json:"lost"`
	Departed       int64 `json:"departed"`
	SojournSum     int64 `json:"sojourn_sum"`

	// Reduced estimates, compared with relative tolerance
	MeanQueueLength float64 `json:"mean_queue_length"`
	IdleProbability float64 `json:"idle_probability"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
