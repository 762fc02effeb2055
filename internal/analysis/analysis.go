// Package analysis drives a full scan: file discovery, per-file token
// processing, entity extraction and registry population.
package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"codescope/internal/config"
	"codescope/internal/observability"
	"codescope/internal/profile"
	"codescope/internal/results"
	"codescope/internal/scan"
)

// Run is the outcome of one analysis pass. Each pass owns a fresh registry.
type Run struct {
	Registry *results.Registry
	Files    int
	Hits     int
	Misses   int
	Duration time.Duration
}

// Analyzer holds the per-process pieces that survive across runs: the
// language profiles and the compiled exclude patterns.
type Analyzer struct {
	cfg      *config.Config
	profiles *profile.Registry

	dirGlobs    []glob.Glob
	fileGlobs   []glob.Glob
	entityGlobs []glob.Glob

	mu      sync.RWMutex
	lastRun *Run
}

func New(cfg *config.Config) (*Analyzer, error) {
	profiles := profile.Defaults()
	if err := profiles.Restrict(cfg.Languages); err != nil {
		return nil, err
	}
	if err := profiles.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{cfg: cfg, profiles: profiles}

	var err error
	if a.dirGlobs, err = compileGlobs(cfg.Exclude.Dirs); err != nil {
		return nil, fmt.Errorf("exclude dirs: %w", err)
	}
	if a.fileGlobs, err = compileGlobs(cfg.Exclude.Files); err != nil {
		return nil, fmt.Errorf("exclude files: %w", err)
	}
	if a.entityGlobs, err = compileGlobs(cfg.Exclude.Entities); err != nil {
		return nil, fmt.Errorf("exclude entities: %w", err)
	}
	return a, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Profiles exposes the active language registry.
func (a *Analyzer) Profiles() *profile.Registry {
	return a.profiles
}

// LastRun returns the most recent completed run, or nil before the first.
func (a *Analyzer) LastRun() *Run {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastRun
}

// Health summarizes the latest run for the observability endpoint.
func (a *Analyzer) Health(ctx context.Context) observability.HealthStatus {
	run := a.LastRun()
	if run == nil {
		return observability.HealthStatus{Status: "starting"}
	}
	return observability.HealthStatus{
		Status:    "up",
		LastRunMS: run.Duration.Milliseconds(),
		Records:   run.Registry.Len(),
	}
}

// Analyze scans every configured source root and returns the populated run.
// Unreadable or malformed files are logged and skipped; only setup failures
// abort the pass.
func (a *Analyzer) Analyze(ctx context.Context) (*Run, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysis.run")
	defer span.End()

	start := time.Now()
	run := &Run{Registry: results.NewRegistry(a.cfg.StrictRegistry)}

	for _, root := range a.cfg.SourceRoots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve source root %q: %w", root, err)
		}

		files, err := a.discover(absRoot)
		if err != nil {
			return nil, err
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := a.processFile(run, absRoot, path); err != nil {
				slog.Warn("failed to process file", "path", path, "error", err)
			}
		}
	}

	run.Duration = time.Since(start)

	observability.AnalysisDuration.Observe(run.Duration.Seconds())
	observability.RegistryRecords.Set(float64(run.Registry.Len()))

	a.mu.Lock()
	a.lastRun = run
	a.mu.Unlock()

	slog.Info("analysis complete",
		"id", run.Registry.AnalysisID,
		"files", run.Files,
		"records", run.Registry.Len(),
		"hits", run.Hits,
		"misses", run.Misses,
		"duration", run.Duration)
	return run, nil
}

// discover walks one root and returns every file a profile claims, in walk
// order, with exclude patterns applied to base names.
func (a *Analyzer) discover(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			for _, g := range a.dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if _, ok := a.profiles.ForPath(path); !ok {
			return nil
		}
		for _, g := range a.fileGlobs {
			if g.Match(base) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", root, err)
	}
	return files, nil
}

func (a *Analyzer) processFile(run *Run, root, path string) error {
	prof, ok := a.profiles.ForPath(path)
	if !ok {
		return fmt.Errorf("no language profile for %q", path)
	}

	fileStart := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	source := string(content)
	if prof.PrepareSource != nil {
		source = prof.PrepareSource(source)
	}
	tokens := scan.Normalize(source, prof.TokenMap)
	if prof.FilterTokens != nil {
		tokens = prof.FilterTokens(tokens)
	}
	stripped := scan.Tokenize(scan.StripComments(tokens, prof.Comments))

	file := &results.FileResult{
		AbsolutePath: abs,
		RelativePath: rel,
		DisplayName:  filepath.Base(path),
		Language:     prof.Name,
		Tokens:       stripped,
	}

	if prof.Namespace != nil {
		if name := scan.ScanNamespace(stripped, prof.Namespace.Keyword, prof.Namespace.Stop); name != "" {
			file.SetModuleName(name)
		}
	}

	stats := &scan.Stats{}
	a.scanDirectives(file, stripped, prof, stats)

	// Register the file before its entities so a strict-mode rejection of a
	// colliding file key cannot leave orphaned entity records behind.
	if err := run.Registry.Register(file); err != nil {
		return err
	}
	a.extractEntities(run, file, tokens, prof, stats)

	run.Files++
	run.Hits += stats.Hits
	run.Misses += stats.Misses

	observability.FilesScanned.WithLabelValues(prof.Name).Inc()
	observability.FileScanDuration.WithLabelValues(prof.Name).Observe(time.Since(fileStart).Seconds())
	observability.ParsingHits.WithLabelValues(prof.Name).Add(float64(stats.Hits))
	observability.ParsingMisses.WithLabelValues(prof.Name).Add(float64(stats.Misses))
	return nil
}

// scanDirectives walks the stripped token stream once and applies every
// directive rule of the profile. A stop keyword ends the scan for the whole
// file; a grammar mismatch only counts a miss.
func (a *Analyzer) scanDirectives(file *results.FileResult, tokens []string, prof *profile.Profile, stats *scan.Stats) {
	cursor := scan.NewCursor(tokens)

scanning:
	for cursor.Next() {
		tok := cursor.Token()
		for i := range prof.Directives {
			rule := &prof.Directives[i]
			if rule.Grammar.StopsScan(tok) {
				break scanning
			}
			if tok != rule.Keyword {
				continue
			}

			name, err := scan.ExtractDirective(&rule.Grammar, cursor.Rest())
			if err != nil {
				stats.Miss()
				slog.Debug("directive mismatch",
					"file", file.RelativePath,
					"keyword", tok,
					"lookahead", cursor.Statement(scan.MaxDebugTokens))
				continue
			}
			stats.Hit()
			file.AddImport(name)
		}
	}
}

func (a *Analyzer) extractEntities(run *Run, file *results.FileResult, tokens []string, prof *profile.Profile, stats *scan.Stats) {
	if len(prof.Entity.Keywords) == 0 {
		return
	}

	for _, cand := range prof.Extractor().Extract(tokens, stats) {
		if a.entityExcluded(cand.Name) {
			continue
		}

		unique := cand.Name
		if prof.UniqueNames == profile.UniquePathScoped {
			unique = file.RelativePath + "/" + cand.Name
		}

		entity := results.NewEntityResult(cand.Name, unique, cand.Tokens, file)
		if cand.Inherited != "" {
			entity.AddInheritance(cand.Inherited)
		} else if prof.Inheritance != "" {
			if parent, ok := scan.FirstAfterMarker(cand.Tokens, prof.Inheritance); ok {
				entity.AddInheritance(parent)
			}
		}

		if err := run.Registry.Register(entity); err != nil {
			slog.Warn("entity collision", "name", unique, "file", file.RelativePath, "error", err)
		}
	}
}

func (a *Analyzer) entityExcluded(name string) bool {
	for _, g := range a.entityGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
