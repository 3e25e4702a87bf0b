package bench

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/routebench/bench/internal/report"
)

// Serve exposes the persisted reports of cfg.Output over HTTP until ctx
// is cancelled. The run index is optional: when it cannot be opened the
// API serves files only.
func Serve(ctx context.Context, cfg *Config, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var ix *report.Index
	if cfg.Output.IndexPath != "" {
		opened, err := report.OpenIndex(ctx, cfg.Output.IndexPath)
		if err != nil {
			logger.Warn("bench: run index unavailable", "error", err)
		} else {
			ix = opened
			defer ix.Close()
		}
	}

	srv := report.NewServer(cfg.Output.Dir, cfg.Output.HistoryDir, ix, logger)
	return srv.ListenAndServe(ctx, addr)
}
