package report

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hazyhaar/routebench/bench/internal/stats"
)

func sampleReport(ts time.Time) *Report {
	return &Report{
		Timestamp:      ts.UTC().Format(time.RFC3339Nano),
		TestDurationMs: 81234.5,
		Order:          []string{"react-router", "tanstack"},
		Results: map[string]*stats.Aggregated{
			"react-router": {
				Iterations:      3,
				TotalLoadTimeMs: 4934,
				Trials: []stats.TrialMetrics{
					{TotalLoadTimeMs: 4800}, {TotalLoadTimeMs: 5000}, {TotalLoadTimeMs: 5002},
				},
			},
			"tanstack": nil,
		},
		NavigationMs: map[string]float64{"react-router": 112},
		Comparison:   stats.Comparison{LoadTimeWinner: "react-router", LoadTimeDifferenceMs: 693},
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	rep := sampleReport(time.Now())
	if _, err := w.Write(rep); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadLatest(dir)
	if err != nil {
		t.Fatalf("ReadLatest: %v", err)
	}
	if !reflect.DeepEqual(got, rep) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, rep)
	}

	// The nil aggregate survives as nil, distinguishable from zeros.
	if agg, ok := got.Results["tanstack"]; !ok || agg != nil {
		t.Errorf("nil aggregate: got %+v (present=%v), want nil present", agg, ok)
	}
}

func TestWriter_HistoryNeverOverwritten(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	first := sampleReport(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	second := sampleReport(time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC))
	second.Comparison.LoadTimeWinner = "tanstack"

	p1, err := w.Write(first)
	if err != nil {
		t.Fatalf("Write first: %v", err)
	}
	p2, err := w.Write(second)
	if err != nil {
		t.Fatalf("Write second: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("history paths collide: %s", p1)
	}

	entries, err := os.ReadDir(w.HistoryDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("history files: got %d, want 2", len(entries))
	}

	// Latest reflects only the second report.
	latest, err := ReadLatest(dir)
	if err != nil {
		t.Fatalf("ReadLatest: %v", err)
	}
	if latest.Comparison.LoadTimeWinner != "tanstack" {
		t.Errorf("latest winner: got %q, want %q", latest.Comparison.LoadTimeWinner, "tanstack")
	}
}

func TestWriter_SameTimestampRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	rep := sampleReport(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	if _, err := w.Write(rep); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write(rep); err == nil {
		t.Error("Write with identical timestamp: got nil error, want refusal")
	}
}

func TestWriter_CreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "results")
	w := NewWriter(dir, "")

	if _, err := w.Write(sampleReport(time.Now())); err != nil {
		t.Fatalf("Write into missing dirs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LatestName)); err != nil {
		t.Errorf("latest file missing: %v", err)
	}
}

func TestWriter_HistoryStampFilesystemSafe(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")

	p, err := w.Write(sampleReport(time.Now()))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	base := filepath.Base(p)
	for _, c := range base {
		if c == ':' || c == '/' || c == '\\' {
			t.Errorf("history filename %q contains unsafe character %q", base, c)
		}
	}
}
