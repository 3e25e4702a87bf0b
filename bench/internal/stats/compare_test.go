package stats

import (
	"math"
	"testing"
)

func TestCompare_LoadTimeWinner(t *testing.T) {
	order := []string{"react-router", "tanstack"}
	results := map[string]*Aggregated{
		"react-router": {TotalLoadTimeMs: 4934, TotalTransferBytes: 900 * 1024},
		"tanstack":     {TotalLoadTimeMs: 5627, TotalTransferBytes: 700 * 1024},
	}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "react-router" {
		t.Errorf("LoadTimeWinner: got %q, want %q", cmp.LoadTimeWinner, "react-router")
	}
	if math.Abs(cmp.LoadTimeDifferenceMs-693) > 1e-9 {
		t.Errorf("LoadTimeDifferenceMs: got %v, want 693", cmp.LoadTimeDifferenceMs)
	}
	if cmp.TransferSizeWinner != "tanstack" {
		t.Errorf("TransferSizeWinner: got %q, want %q", cmp.TransferSizeWinner, "tanstack")
	}
	if got, want := cmp.TransferSizeDifferenceBytes, 200.0*1024; got != want {
		t.Errorf("TransferSizeDifferenceBytes: got %v, want %v", got, want)
	}
}

func TestCompare_NilAggregateExcluded(t *testing.T) {
	order := []string{"a", "b", "c"}
	results := map[string]*Aggregated{
		"a": nil,
		"b": {TotalLoadTimeMs: 200},
		"c": {TotalLoadTimeMs: 100},
	}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "c" {
		t.Errorf("LoadTimeWinner: got %q, want %q (nil entry must be excluded)", cmp.LoadTimeWinner, "c")
	}
	if cmp.LoadTimeDifferenceMs != 100 {
		t.Errorf("LoadTimeDifferenceMs: got %v, want 100", cmp.LoadTimeDifferenceMs)
	}
}

func TestCompare_AllNilNoVerdict(t *testing.T) {
	order := []string{"a", "b"}
	results := map[string]*Aggregated{"a": nil, "b": nil}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "" {
		t.Errorf("LoadTimeWinner: got %q, want empty", cmp.LoadTimeWinner)
	}
	if cmp.TransferSizeWinner != "" {
		t.Errorf("TransferSizeWinner: got %q, want empty", cmp.TransferSizeWinner)
	}
}

func TestCompare_SingleParticipantNoVerdict(t *testing.T) {
	order := []string{"a", "b"}
	results := map[string]*Aggregated{
		"a": {TotalLoadTimeMs: 100},
		"b": nil,
	}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "" {
		t.Errorf("LoadTimeWinner with one participant: got %q, want empty", cmp.LoadTimeWinner)
	}
}

// Ties break toward the earliest target in configured order.
func TestCompare_TieBreakConfigOrder(t *testing.T) {
	order := []string{"second", "first"}
	results := map[string]*Aggregated{
		"first":  {TotalLoadTimeMs: 500},
		"second": {TotalLoadTimeMs: 500},
	}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "second" {
		t.Errorf("LoadTimeWinner on tie: got %q, want %q (config order)", cmp.LoadTimeWinner, "second")
	}
	if cmp.LoadTimeDifferenceMs != 0 {
		t.Errorf("LoadTimeDifferenceMs on tie: got %v, want 0", cmp.LoadTimeDifferenceMs)
	}
}

func TestCompare_NavigationWinner(t *testing.T) {
	order := []string{"a", "b", "c"}
	results := map[string]*Aggregated{
		"a": {TotalLoadTimeMs: 1},
		"b": {TotalLoadTimeMs: 2},
		"c": {TotalLoadTimeMs: 3},
	}
	// c's navigation measurement was dropped.
	nav := map[string]float64{"a": 120, "b": 80}

	cmp := Compare(order, results, nav)
	if cmp.NavigationWinner != "b" {
		t.Errorf("NavigationWinner: got %q, want %q", cmp.NavigationWinner, "b")
	}
	if cmp.NavigationDifferenceMs != 40 {
		t.Errorf("NavigationDifferenceMs: got %v, want 40", cmp.NavigationDifferenceMs)
	}
}

func TestCompare_ThreeWayDifferenceIsRunnerUpMargin(t *testing.T) {
	order := []string{"a", "b", "c"}
	results := map[string]*Aggregated{
		"a": {TotalLoadTimeMs: 300},
		"b": {TotalLoadTimeMs: 100},
		"c": {TotalLoadTimeMs: 150},
	}

	cmp := Compare(order, results, nil)
	if cmp.LoadTimeWinner != "b" {
		t.Errorf("LoadTimeWinner: got %q, want %q", cmp.LoadTimeWinner, "b")
	}
	// Margin is against the runner-up (150), not the worst (300).
	if cmp.LoadTimeDifferenceMs != 50 {
		t.Errorf("LoadTimeDifferenceMs: got %v, want 50", cmp.LoadTimeDifferenceMs)
	}
}
