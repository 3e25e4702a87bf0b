// CLAUDE:SUMMARY CLI entry point for routebench — run benchmarks from YAML config, quick single-URL mode, or serve reports.
// Command routebench measures and compares page-load performance of web
// applications in a real headless browser.
//
// Usage:
//
//	routebench                               # full run from ./bench.yaml
//	routebench -config bench.yaml            # full run from YAML config
//	routebench -url http://localhost:3000    # quick single-target run
//	routebench -serve :8090 -config bench.yaml  # serve persisted reports
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/routebench/bench"
)

func main() {
	configPath := flag.String("config", "", "path to bench.yaml config file")
	singleURL := flag.String("url", "", "benchmark a single URL with defaults")
	serveAddr := flag.String("serve", "", "serve persisted reports on this address instead of running")
	iterations := flag.Int("iterations", 0, "override trial count per target")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *singleURL, *serveAddr, *iterations); err != nil {
		logger.Error("routebench: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, singleURL, serveAddr string, iterations int) error {
	cfg, err := loadConfig(configPath, singleURL)
	if err != nil {
		return err
	}
	if iterations > 0 {
		cfg.Iterations = iterations
	}

	if serveAddr != "" {
		return bench.Serve(ctx, cfg, serveAddr, logger)
	}

	runner := bench.NewRunner(cfg, logger)
	if _, err := runner.Run(ctx, os.Stdout); err != nil {
		return err
	}
	return nil
}

func loadConfig(configPath, singleURL string) (*bench.Config, error) {
	if configPath != "" {
		return bench.LoadConfigFile(configPath)
	}

	if singleURL == "" {
		// No arguments: pick up a bench.yaml next to the binary's cwd.
		if _, err := os.Stat("bench.yaml"); err == nil {
			return bench.LoadConfigFile("bench.yaml")
		}
	}

	if singleURL != "" {
		cfg := &bench.Config{
			Apps: []bench.AppTarget{{
				Name:    "target",
				BaseURL: singleURL,
			}},
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	fmt.Fprintln(os.Stderr, "usage: routebench -config <file> | -url <url> | -serve <addr> -config <file>")
	os.Exit(1)
	return nil, nil
}
