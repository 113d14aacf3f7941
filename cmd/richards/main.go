package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"richards/internal/bench"
	"richards/internal/logx"
	"richards/internal/tracing"
)

const version = "0.1.0"

func main() {
	var (
		cfgPath    string
		iterations int
		warmup     int
		inner      int
		count      int
		parallel   int
		noVerify   bool
		trace      bool
		csvPath    string
		spansFile  string
		logLevel   string
	)
	flag.StringVar(&cfgPath, "config", "config.yml", "path to config yaml")
	flag.IntVar(&iterations, "iterations", 0, "measured iterations")
	flag.IntVar(&warmup, "warmup", 0, "unmeasured warmup iterations")
	flag.IntVar(&inner, "inner", 0, "simulation runs per iteration")
	flag.IntVar(&count, "count", 0, "idle task countdown per run")
	flag.IntVar(&parallel, "parallel", 0, "concurrent runs per iteration")
	flag.BoolVar(&noVerify, "no-verify", false, "skip checksum verification")
	flag.BoolVar(&trace, "trace", false, "print the dispatch trace of a single run")
	flag.StringVar(&csvPath, "csv", "", "write per-iteration results to this CSV file")
	flag.StringVar(&spansFile, "spans", "", "export OpenTelemetry spans to this file")
	flag.StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")
	flag.Parse()

	// Read the configuration
	cfg, err := bench.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	// Flags only override what was given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			cfg.Iterations = iterations
		case "warmup":
			cfg.Warmup = warmup
		case "inner":
			cfg.Inner = inner
		case "count":
			cfg.Count = count
		case "parallel":
			cfg.Parallel = parallel
		case "no-verify":
			cfg.Verify = !noVerify
		case "trace":
			cfg.Trace = trace
		case "csv":
			cfg.CSVPath = csvPath
		case "spans":
			cfg.SpansFile = spansFile
		case "log-level":
			cfg.Log.Level = logLevel
		}
	})
	cfg = cfg.Normalize()

	log, closer := logx.New(cfg.Log.Logx())
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error("benchmark failed", logx.Err(err))
		_ = closer.Close()
		os.Exit(1)
	}
}

func run(cfg bench.Config, log logx.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.SpansFile != "" {
		shutdown, err := tracing.Init("richards", version, cfg.SpansFile)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			if err := shutdown(sctx); err != nil {
				log.Warn("tracing shutdown", logx.Err(err))
			}
		}()
	}

	runner, err := bench.NewRunner(cfg, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	rep, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Richards: session=%s iterations=%d checksum=%d mean=%s\n",
		rep.Session, len(rep.Records), rep.Delivered, rep.Summary.Mean)
	return nil
}
