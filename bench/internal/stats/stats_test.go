package stats

import (
	"math"
	"reflect"
	"testing"
)

func TestAggregate_MeanIsExact(t *testing.T) {
	trials := []TrialMetrics{
		{TotalLoadTimeMs: 100, NetworkRequestCount: 10, TotalTransferBytes: 5 * 1024},
		{TotalLoadTimeMs: 200, NetworkRequestCount: 20, TotalTransferBytes: 10 * 1024},
		{TotalLoadTimeMs: 300, NetworkRequestCount: 30, TotalTransferBytes: 15 * 1024},
	}

	agg := Aggregate(trials)
	if agg == nil {
		t.Fatal("Aggregate: got nil, want aggregate")
	}
	if agg.Iterations != 3 {
		t.Errorf("Iterations: got %d, want 3", agg.Iterations)
	}
	if got, want := agg.TotalLoadTimeMs, 200.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalLoadTimeMs: got %v, want %v", got, want)
	}
	if got, want := agg.NetworkRequestCount, 20.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("NetworkRequestCount: got %v, want %v", got, want)
	}
	if got, want := agg.TotalTransferBytes, 10.0*1024; math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalTransferBytes: got %v, want %v", got, want)
	}
}

// Counters must be scoped per trial: two trials seeing 10 and 20
// requests average to 15, never 30. A leaked accumulator makes the
// second trial carry the first's totals.
func TestAggregate_PerTrialCountersNotCumulative(t *testing.T) {
	trials := []TrialMetrics{
		{NetworkRequestCount: 10, TotalTransferBytes: 5 * 1024},
		{NetworkRequestCount: 20, TotalTransferBytes: 10 * 1024},
	}

	agg := Aggregate(trials)
	if got, want := agg.NetworkRequestCount, 15.0; got != want {
		t.Errorf("NetworkRequestCount mean: got %v, want %v", got, want)
	}
	if got, want := agg.TotalTransferBytes, 7.5*1024; got != want {
		t.Errorf("TotalTransferBytes mean: got %v, want %v", got, want)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	trials := []TrialMetrics{
		{TotalLoadTimeMs: 123.4, FirstContentfulPaintMs: 56.7, JSBytes: 1000},
		{TotalLoadTimeMs: 321.9, FirstContentfulPaintMs: 78.9, JSBytes: 3000},
	}

	first := Aggregate(trials)
	second := Aggregate(trials)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregate_EmptyIsNil(t *testing.T) {
	if got := Aggregate(nil); got != nil {
		t.Errorf("Aggregate(nil): got %+v, want nil", got)
	}
	if got := Aggregate([]TrialMetrics{}); got != nil {
		t.Errorf("Aggregate(empty): got %+v, want nil", got)
	}
}

func TestAggregate_SingleTrial(t *testing.T) {
	trials := []TrialMetrics{{TotalLoadTimeMs: 4934, CSSBytes: 2048}}

	agg := Aggregate(trials)
	if agg.Iterations != 1 {
		t.Errorf("Iterations: got %d, want 1", agg.Iterations)
	}
	if agg.TotalLoadTimeMs != 4934 {
		t.Errorf("TotalLoadTimeMs: got %v, want 4934", agg.TotalLoadTimeMs)
	}
	if agg.CSSBytes != 2048 {
		t.Errorf("CSSBytes: got %v, want 2048", agg.CSSBytes)
	}
}

func TestAggregate_CopiesTrials(t *testing.T) {
	trials := []TrialMetrics{{TotalLoadTimeMs: 10}}
	agg := Aggregate(trials)

	trials[0].TotalLoadTimeMs = 999
	if agg.Trials[0].TotalLoadTimeMs != 10 {
		t.Errorf("Trials aliased caller slice: got %v, want 10", agg.Trials[0].TotalLoadTimeMs)
	}
}
