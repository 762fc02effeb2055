package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codescope.toml")
	content := `
source_roots = ["./src", "./templates"]
languages = ["csharp", "twig"]
strict_registry = true

[exclude]
dirs = ["vendor", "node_modules"]
files = ["*.generated.cs"]
entities = ["Migration*"]

[watch]
debounce = "250ms"
rescans_per_min = 10.0

[output]
dot = "deps.dot"
tsv = "deps.tsv"

[history]
path = "history.db"

[observability]
listen = ":9187"
otlp_endpoint = "localhost:4317"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cfg.SourceRoots) != 2 || cfg.SourceRoots[0] != "./src" {
		t.Errorf("source roots = %v", cfg.SourceRoots)
	}
	if !cfg.StrictRegistry {
		t.Error("strict_registry not parsed")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.RescansPerMin != 10.0 {
		t.Errorf("rescans = %v", cfg.Watch.RescansPerMin)
	}
	if cfg.Output.DOT != "deps.dot" || cfg.Output.TSV != "deps.tsv" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.History.Path != "history.db" {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Observability.Listen != ":9187" || cfg.Observability.OTLPEndpoint != "localhost:4317" {
		t.Errorf("observability = %+v", cfg.Observability)
	}
	if len(cfg.Exclude.Entities) != 1 {
		t.Errorf("exclude = %+v", cfg.Exclude)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("source_roots = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if len(cfg.SourceRoots) != 1 || cfg.SourceRoots[0] != "." {
		t.Errorf("source roots = %v", cfg.SourceRoots)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.RescansPerMin != 30 {
		t.Errorf("rescans = %v", cfg.Watch.RescansPerMin)
	}
	if cfg.StrictRegistry {
		t.Error("strict must default off")
	}
}
