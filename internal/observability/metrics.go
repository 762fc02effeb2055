package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_parsing_hits_total",
		Help: "Header and directive grammars successfully matched.",
	}, []string{"language"})

	ParsingMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_parsing_misses_total",
		Help: "Header and directive grammars that failed to match.",
	}, []string{"language"})

	FilesScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_files_scanned_total",
		Help: "Source files processed per language.",
	}, []string{"language"})

	FileScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codescope_file_scan_seconds",
		Help:    "Time spent scanning a single source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codescope_analysis_seconds",
		Help:    "Time spent on a full analysis run.",
		Buckets: prometheus.DefBuckets,
	})

	RegistryRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codescope_registry_records",
		Help: "Records in the result registry after the latest run.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codescope_graph_edges_total",
		Help: "Edges in the dependency graph after the latest run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codescope_watcher_events_total",
		Help: "File system events received by the watcher.",
	})
)
