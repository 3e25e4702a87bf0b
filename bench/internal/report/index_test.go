package report

import (
	"context"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/routebench/bench/internal/stats"
)

func TestIndex_InsertAndList(t *testing.T) {
	ctx := context.Background()
	ix, err := OpenIndex(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer ix.Close()

	rep := &Report{
		Timestamp:      "2026-08-30T10:00:00Z",
		TestDurationMs: 45000,
		Comparison: stats.Comparison{
			LoadTimeWinner:     "react-router",
			TransferSizeWinner: "tanstack",
		},
	}
	if err := ix.InsertRun(ctx, rep, "history/run-a.json"); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	rep2 := &Report{
		Timestamp:      "2026-08-30T11:00:00Z",
		TestDurationMs: 47000,
		Comparison:     stats.Comparison{LoadTimeWinner: "nextjs"},
	}
	if err := ix.InsertRun(ctx, rep2, "history/run-b.json"); err != nil {
		t.Fatalf("InsertRun second: %v", err)
	}

	runs, err := ix.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns: got %d rows, want 2", len(runs))
	}

	// Newest first.
	if runs[0].LoadTimeWinner != "nextjs" {
		t.Errorf("runs[0].LoadTimeWinner: got %q, want %q", runs[0].LoadTimeWinner, "nextjs")
	}
	if runs[1].LoadTimeWinner != "react-router" {
		t.Errorf("runs[1].LoadTimeWinner: got %q, want %q", runs[1].LoadTimeWinner, "react-router")
	}
	if runs[1].TransferWinner != "tanstack" {
		t.Errorf("runs[1].TransferWinner: got %q, want %q", runs[1].TransferWinner, "tanstack")
	}
	if runs[1].ReportFile != "history/run-a.json" {
		t.Errorf("runs[1].ReportFile: got %q, want %q", runs[1].ReportFile, "history/run-a.json")
	}
}

func TestIndex_ListLimit(t *testing.T) {
	ctx := context.Background()
	ix, err := OpenIndex(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer ix.Close()

	for i := 0; i < 5; i++ {
		rep := &Report{Timestamp: "2026-08-30T10:00:00Z"}
		if err := ix.InsertRun(ctx, rep, "f.json"); err != nil {
			t.Fatalf("InsertRun: %v", err)
		}
	}

	runs, err := ix.ListRuns(ctx, 3)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("ListRuns limit: got %d rows, want 3", len(runs))
	}
}
