// Package app wires the analysis/caching/rendering engine into one
// sequential generation pipeline: analyze -> enrich -> resolve ->
// render, one documented entity at a time. The pipeline owns its two
// cache instances and its description lookup for exactly one run.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tsdocs/internal/core/config"
	"tsdocs/internal/core/errors"
	"tsdocs/internal/core/ports"
	"tsdocs/internal/engine/analyzer"
	"tsdocs/internal/engine/enrich"
	"tsdocs/internal/engine/render"
	"tsdocs/internal/engine/resolver"
	"tsdocs/internal/shared/cache"
	"tsdocs/internal/shared/observability"
)

// pageKinds are the entity kinds that get their own rendered output
// tree; other kinds only appear as members of a page.
var pageKinds = map[ports.ItemKind]bool{
	ports.KindPackage:   true,
	ports.KindNamespace: true,
	ports.KindClass:     true,
	ports.KindInterface: true,
	ports.KindEnum:      true,
	ports.KindFunction:  true,
	ports.KindTypeAlias: true,
}

// BrokenLink records a cross-reference that did not resolve; the link
// rendering layer presents it as a flagged element instead of failing
// the run.
type BrokenLink struct {
	RefID string
	Error string
}

// EntityResult is the rendered output for one documented entity.
type EntityResult struct {
	RefID       string
	Path        string
	Output      *render.OutputNode
	BrokenLinks []BrokenLink
}

// Generator runs the full pipeline over an API model. Single-threaded
// and fully synchronous; construct one per generation run and discard
// it (or Reset it) afterwards.
type Generator struct {
	cfg      *config.Config
	runID    string
	packages []ports.ApiItem

	analyzerCache *cache.Bounded[string, *analyzer.TypeNode]
	resolverCache *cache.Bounded[string, resolver.ResolutionResult]

	analyzer *analyzer.Analyzer
	enricher *enrich.Enricher
	resolver *resolver.Resolver
	renderer *render.Renderer

	excludes []glob.Glob
}

// NewGenerator builds a pipeline from config plus the three boundary
// collaborators: the API model, the description source, and the output
// path mapper.
func NewGenerator(cfg *config.Config, packages []ports.ApiItem, source ports.DescriptionSource, pathMapper ports.PathMapper) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	if len(packages) == 0 {
		return nil, errors.New(errors.CodeValidationError, "api model has no packages")
	}
	if source == nil {
		return nil, errors.New(errors.CodeValidationError, "description source is required")
	}

	analyzerCache, err := buildCache[string, *analyzer.TypeNode](cfg.Caches.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("analyzer cache: %w", err)
	}
	resolverCache, err := buildCache[string, resolver.ResolutionResult](cfg.Caches.Resolver)
	if err != nil {
		return nil, fmt.Errorf("resolver cache: %w", err)
	}

	renderer, err := render.New(cfg.Render.MaxDepth)
	if err != nil {
		return nil, err
	}

	excludes := make([]glob.Glob, 0, len(cfg.Exclude.RefIDs))
	for _, pattern := range cfg.Exclude.RefIDs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	return &Generator{
		cfg:           cfg,
		runID:         uuid.NewString(),
		packages:      packages,
		analyzerCache: analyzerCache,
		resolverCache: resolverCache,
		analyzer:      analyzer.New(analyzerCache),
		enricher:      enrich.New(source),
		resolver:      resolver.New(packages, pathMapper, resolverCache),
		renderer:      renderer,
		excludes:      excludes,
	}, nil
}

func buildCache[K ~string, V any](settings config.CacheSettings) (*cache.Bounded[K, V], error) {
	if !settings.IsEnabled() {
		return cache.NewDisabled[K, V](), nil
	}
	return cache.New[K, V](settings.MaxSize)
}

// RunID identifies this generation run in logs and spans.
func (g *Generator) RunID() string {
	return g.runID
}

// Resolver exposes the run's reference resolver for the link rendering
// layer.
func (g *Generator) Resolver() *resolver.Resolver {
	return g.resolver
}

// Run processes every page-worthy entity sequentially and returns the
// rendered trees in graph order.
func (g *Generator) Run(ctx context.Context) ([]EntityResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "generator.Run",
		trace.WithAttributes(attribute.String("run_id", g.runID)))
	defer span.End()

	start := time.Now()
	slog.Info("generation run starting", "run_id", g.runID, "packages", len(g.packages))

	var results []EntityResult
	for _, pkg := range g.packages {
		if err := g.walk(ctx, pkg, &results); err != nil {
			return nil, err
		}
	}

	observability.GenerationDuration.WithLabelValues("run").Observe(time.Since(start).Seconds())
	slog.Info("generation run finished",
		"run_id", g.runID,
		"entities", len(results),
		"duration", time.Since(start),
	)
	return results, nil
}

func (g *Generator) walk(ctx context.Context, item ports.ApiItem, results *[]EntityResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if pageKinds[item.Kind()] {
		result, err := g.GenerateEntity(ctx, item)
		if err != nil {
			return err
		}
		if result != nil {
			*results = append(*results, *result)
		}
	}
	for _, member := range item.Members() {
		if err := g.walk(ctx, member, results); err != nil {
			return err
		}
	}
	return nil
}

// GenerateEntity runs the pipeline for a single entity. Returns nil
// without error when the entity is excluded by configuration.
func (g *Generator) GenerateEntity(ctx context.Context, item ports.ApiItem) (*EntityResult, error) {
	if item == nil {
		return nil, errors.New(errors.CodeValidationError, "entity is required")
	}

	refID := resolver.GetRefID(item)
	if g.isExcluded(refID) {
		slog.Debug("entity excluded", "run_id", g.runID, "ref_id", refID)
		return nil, nil
	}

	ctx, span := observability.Tracer.Start(ctx, "generator.GenerateEntity",
		trace.WithAttributes(attribute.String("ref_id", refID)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	output := g.renderer.RenderItem(item)

	// A structural signature yields an enriched property tree appended
	// to the entity's page.
	if signature := item.SignatureText(); signature != "" {
		node := g.analyzer.Analyze(signature)
		summary := ""
		if doc := item.Doc(); doc != nil {
			summary = doc.Summary
		}
		info, err := g.enricher.Enrich(node, summary, item.DisplayName())
		if err != nil {
			return nil, errors.AddContext(err, errors.CtxRefID, refID)
		}
		output.Children = append(output.Children, g.renderer.RenderProperty(info))
	}

	result := &EntityResult{
		RefID:       refID,
		Path:        g.resolver.ValidateRefID(refID).Path,
		Output:      output,
		BrokenLinks: g.validateDocLinks(item),
	}

	observability.EntitiesRenderedTotal.Inc()
	observability.GenerationDuration.WithLabelValues("entity").Observe(time.Since(start).Seconds())
	return result, nil
}

// validateDocLinks resolves every {@link ...} reference in the entity's
// doc comment. Unresolved references are reported, never fatal.
func (g *Generator) validateDocLinks(item ports.ApiItem) []BrokenLink {
	doc := item.Doc()
	if doc == nil {
		return nil
	}

	var broken []BrokenLink
	for _, refID := range ExtractLinkRefs(doc.Summary + "\n" + doc.Remarks) {
		if res := g.resolver.ValidateRefID(refID); !res.IsValid {
			broken = append(broken, BrokenLink{RefID: refID, Error: res.Error})
			slog.Warn("broken cross-reference",
				"run_id", g.runID,
				"entity", resolver.GetRefID(item),
				"ref_id", refID,
				"error", res.Error,
			)
		}
	}
	return broken
}

func (g *Generator) isExcluded(refID string) bool {
	for _, pattern := range g.excludes {
		if pattern.Match(refID) {
			return true
		}
	}
	return false
}

// CacheStats reports both cache instances for diagnostics; never
// required for correctness.
func (g *Generator) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"analyzer": g.analyzerCache.GetStats(),
		"resolver": g.resolverCache.GetStats(),
	}
}

// Reset clears both caches so the Generator can serve another
// independent run in the same process.
func (g *Generator) Reset() {
	g.analyzerCache.Clear()
	g.resolverCache.Clear()
	g.runID = uuid.NewString()
}
