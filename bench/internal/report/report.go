// CLAUDE:SUMMARY Defines the persisted report schema and writes latest + append-only history JSON files.
// Package report persists and exposes benchmark results: a "latest"
// JSON file overwritten each run, an append-only history directory, a
// SQLite run index, a console summary, and a read-only HTTP API.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/routebench/bench/internal/stats"
)

// Report is the only durable artifact of a run. Nil entries in Results
// and absent entries in NavigationMs mark targets whose measurement
// failed entirely; they are distinguishable from real zeros.
type Report struct {
	Timestamp      string                       `json:"timestamp"`
	TestDurationMs float64                      `json:"test_duration_ms"`
	Results        map[string]*stats.Aggregated `json:"results"`
	NavigationMs   map[string]float64           `json:"navigation_ms"`
	Comparison     stats.Comparison             `json:"comparison"`
	Order          []string                     `json:"order"`
}

// LatestName is the fixed filename always holding the most recent run.
const LatestName = "latest.json"

// historyStamp is filesystem-safe: no colons, sub-second suffix keeps
// two runs in the same second from colliding.
const historyStamp = "20060102T150405.000"

// Writer persists reports under a fixed output directory.
type Writer struct {
	Dir        string
	HistoryDir string
}

// NewWriter creates a Writer. historyDir defaults to dir/history.
func NewWriter(dir, historyDir string) *Writer {
	if historyDir == "" {
		historyDir = filepath.Join(dir, "history")
	}
	return &Writer{Dir: dir, HistoryDir: historyDir}
}

// Write serialises the report to the latest file (overwrite) and a
// timestamped history file (never overwritten). Returns the history
// file path.
func (w *Writer) Write(rep *Report) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("report: mkdir %s: %w", w.Dir, err)
	}
	if err := os.MkdirAll(w.HistoryDir, 0o755); err != nil {
		return "", fmt.Errorf("report: mkdir %s: %w", w.HistoryDir, err)
	}

	latest := filepath.Join(w.Dir, LatestName)
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", latest, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, rep.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	histPath := filepath.Join(w.HistoryDir, "run-"+ts.Format(historyStamp)+".json")

	// O_EXCL enforces append-only history: an existing file is a bug,
	// not something to silently replace.
	f, err := os.OpenFile(histPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("report: create history %s: %w", histPath, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("report: write history %s: %w", histPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("report: close history %s: %w", histPath, err)
	}

	return histPath, nil
}

// ReadLatest loads the latest report from dir.
func ReadLatest(dir string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, LatestName))
	if err != nil {
		return nil, err
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("report: decode latest: %w", err)
	}
	return &rep, nil
}
