package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tsdocs/internal/core/app"
	"tsdocs/internal/core/config"
	"tsdocs/internal/core/ports"
	"tsdocs/internal/engine/model"
	"tsdocs/internal/engine/resolver"
	"tsdocs/internal/shared/observability"
	"tsdocs/internal/ui/report"
)

var (
	configPath = flag.String("config", "", "Path to TOML config file (defaults used when empty)")
	modelPath  = flag.String("model", "api-model.json", "Path to the extracted API model document")
	outDir     = flag.String("out", "", "Output directory (overrides config)")
	project    = flag.String("project", "", "Project name used in frontmatter")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "0.3.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("tsdocs v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	if err := run(); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config %q: %w", *configPath, err)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	shutdown, err := observability.InitTracer(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	data, err := os.ReadFile(*modelPath)
	if err != nil {
		return fmt.Errorf("read api model %q: %w", *modelPath, err)
	}
	packages, err := model.Load(data)
	if err != nil {
		return err
	}

	descriptions := model.BuildDescriptions(packages)
	pathMapper := ports.PathMapper(func(item ports.ApiItem) string {
		return "./" + strings.ReplaceAll(resolver.GetRefID(item), ".", "/")
	})

	gen, err := app.NewGenerator(cfg, packages, descriptions, pathMapper)
	if err != nil {
		return err
	}

	if cfg.Observability.MetricsAddr != "" {
		server := observability.NewMetricsServer(cfg.Observability.MetricsAddr, func() any {
			return gen.CacheStats()
		})
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer server.Stop(ctx)
	}

	results, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	md := report.NewMarkdownGenerator()
	opts := report.MarkdownOptions{
		ProjectName:     *project,
		Version:         VERSION,
		FrontMatter:     cfg.Output.FrontMatter,
		TableOfContents: cfg.Output.TableOfContents,
	}

	for _, result := range results {
		rel := strings.ReplaceAll(result.RefID, ".", string(os.PathSeparator)) + ".md"
		path := filepath.Join(cfg.Output.Dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output dir for %q: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(md.Generate(result, opts)), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}

	if cfg.Output.TableOfContents {
		path := filepath.Join(cfg.Output.Dir, "index.md")
		if err := os.WriteFile(path, []byte(md.Index(results, opts)), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}

	for name, stats := range gen.CacheStats() {
		slog.Info("cache stats",
			"cache", name,
			"size", stats.Size,
			"max_size", stats.MaxSize,
			"hits", stats.HitCount,
			"misses", stats.MissCount,
			"hit_rate", fmt.Sprintf("%.2f", stats.HitRate),
			"enabled", stats.Enabled,
		)
	}
	slog.Info("documentation written", "entities", len(results), "dir", cfg.Output.Dir)
	return nil
}
