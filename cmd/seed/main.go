package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lagiland/scoreboard/internal/seed"
	"github.com/lagiland/scoreboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount   = 30
	defaultWorkers = 4
	defaultTimeout = 30 * time.Second
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		count   = flag.Int("count", defaultCount, "Number of submissions to generate and post")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every submission")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &seed.Config{
		BaseURL: *baseURL,
		Count:   *count,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
