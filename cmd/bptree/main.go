// bptree server
// Serves an in-memory B+tree index over a small HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loam-db/bptree/internal/config"
	"github.com/loam-db/bptree/internal/logger"
	"github.com/loam-db/bptree/internal/metrics"
	"github.com/loam-db/bptree/internal/server"
)

var (
	degree    = flag.Int("degree", 0, "minimum branching factor (0 uses the config default)")
	addr      = flag.String("addr", "", "HTTP listen address (empty uses the config default)")
	logLevel  = flag.String("log-level", "", "debug, info, warn, error (empty uses the config default)")
	logPretty = flag.Bool("log-pretty", true, "console-format logs instead of JSON")
)

func main() {
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *degree != 0 {
		cfg.Degree = *degree
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "log-pretty" {
			cfg.LogPretty = *logPretty
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger.InitGlobalLogger(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	lg := logger.GetGlobalLogger()
	met := metrics.NewMetrics()

	lg.LogServerStart(cfg.Addr, cfg.Degree)

	svc, err := server.NewService(cfg.Degree, lg, met)
	if err != nil {
		lg.Error("failed to build service").Err(err).Send()
		os.Exit(1)
	}

	obs := server.NewObservabilityServer(cfg.Addr, svc, lg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		lg.LogServerShutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	lg.LogServerReady(cfg.Addr)
	if err := obs.Start(); err != nil {
		lg.Error("server failed").Err(err).Send()
		os.Exit(1)
	}
}
