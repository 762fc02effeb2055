package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codescope/internal/analysis"
	"codescope/internal/config"
	"codescope/internal/graph"
	"codescope/internal/history"
	"codescope/internal/observability"
	"codescope/internal/output"
	"codescope/internal/watcher"
)

var (
	configPath = flag.String("config", "./codescope.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single scan and exit")
	watch      = flag.Bool("watch", false, "Keep running and rescan on file changes")
	strict     = flag.Bool("strict", false, "Fail on duplicate unique names instead of overwriting")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("codescope v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != "./codescope.toml" || !os.IsNotExist(err) {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *strict {
		cfg.StrictRegistry = true
	}
	if flag.NArg() > 0 {
		cfg.SourceRoots = flag.Args()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	analyzer, err := analysis.New(cfg)
	if err != nil {
		slog.Error("failed to initialize analyzer", "error", err)
		os.Exit(1)
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			slog.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if cfg.Observability.Listen != "" {
		server := observability.NewServer(cfg.Observability.Listen, analyzer.Health)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(stopCtx)
		}()
	}

	runScan := func() error {
		run, err := analyzer.Analyze(ctx)
		if err != nil {
			return err
		}

		g := graph.Build(run.Registry)
		cycles := g.DetectCycles()

		if err := generateOutputs(cfg, g, run, cycles); err != nil {
			slog.Error("failed to generate outputs", "error", err)
		}
		printSummary(run, g, cycles)

		if store != nil {
			if err := store.SaveSnapshot(snapshotFrom(run, g, cycles)); err != nil {
				slog.Warn("failed to save history snapshot", "error", err)
			}
		}
		return nil
	}

	if err := runScan(); err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}

	if *once || !*watch {
		return
	}

	w, err := watcher.New(
		cfg.Watch.Debounce,
		cfg.Watch.RescansPerMin,
		analyzer.Profiles().Extensions(),
		cfg.Exclude.Dirs,
		func(paths []string) {
			slog.Info("detected changes", "count", len(paths))
			if err := runScan(); err != nil {
				slog.Error("rescan failed", "error", err)
			}
		},
	)
	if err != nil {
		slog.Error("failed to initialize watcher", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.Watch(ctx, cfg.SourceRoots); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	slog.Info("watching for changes", "roots", cfg.SourceRoots)
	<-ctx.Done()
}

func generateOutputs(cfg *config.Config, g *graph.Graph, run *analysis.Run, cycles [][]string) error {
	if cfg.Output.DOT != "" {
		gen := output.NewDOTGenerator(g, run.Registry)
		dot, err := gen.Generate(cycles)
		if err != nil {
			return fmt.Errorf("generate DOT output: %w", err)
		}
		if err := output.WriteArtifact(cfg.Output.DOT, dot); err != nil {
			return fmt.Errorf("write DOT output %q: %w", cfg.Output.DOT, err)
		}
	}

	if cfg.Output.TSV != "" {
		gen := output.NewTSVGenerator(g, run.Registry)
		edges, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("generate TSV output: %w", err)
		}
		entities, err := gen.GenerateEntities()
		if err != nil {
			return fmt.Errorf("generate entity TSV block: %w", err)
		}
		tsv := strings.TrimRight(edges, "\n") + "\n\n" + strings.TrimRight(entities, "\n") + "\n"
		if err := output.WriteArtifact(cfg.Output.TSV, tsv); err != nil {
			return fmt.Errorf("write TSV output %q: %w", cfg.Output.TSV, err)
		}
	}

	return nil
}

func printSummary(run *analysis.Run, g *graph.Graph, cycles [][]string) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Scan %s: %d files, %d entities, %d edges in %v\n",
		run.Registry.AnalysisID,
		len(run.Registry.Files()),
		len(run.Registry.Entities()),
		g.EdgeCount(),
		run.Duration)
	fmt.Printf("Grammar hits/misses: %d/%d\n", run.Hits, run.Misses)

	if len(cycles) > 0 {
		fmt.Printf("Found %d dependency cycles:\n", len(cycles))
		for _, c := range cycles {
			fmt.Printf("   %s\n", strings.Join(c, " -> "))
		}
	} else {
		fmt.Println("No dependency cycles found.")
	}
	fmt.Println(strings.Repeat("-", 40))
}

func snapshotFrom(run *analysis.Run, g *graph.Graph, cycles [][]string) history.Snapshot {
	imports := 0
	for _, f := range run.Registry.Files() {
		imports += len(f.Imports)
	}
	return history.Snapshot{
		AnalysisID:  run.Registry.AnalysisID.String(),
		Timestamp:   time.Now().UTC(),
		FileCount:   run.Files,
		EntityCount: len(run.Registry.Entities()),
		ImportCount: imports,
		HitCount:    run.Hits,
		MissCount:   run.Misses,
		CycleCount:  len(cycles),
		DurationMS:  run.Duration.Milliseconds(),
	}
}
