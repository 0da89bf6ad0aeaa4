package app

import (
	"sync"

	"tsdocs/internal/core/config"
	"tsdocs/internal/engine/analyzer"
	"tsdocs/internal/engine/resolver"
	"tsdocs/internal/shared/cache"
)

// Process-wide default cache instances for callers that do not want to
// construct their own. Explicit ResetDefaultCaches keeps tests
// isolated; there is no reconfiguration-on-reuse.
var (
	defaultOnce          sync.Once
	defaultAnalyzerCache *cache.Bounded[string, *analyzer.TypeNode]
	defaultResolverCache *cache.Bounded[string, resolver.ResolutionResult]
)

func initDefaults() {
	defaultOnce.Do(func() {
		// Default sizes can never fail validation.
		defaultAnalyzerCache, _ = cache.New[string, *analyzer.TypeNode](config.DefaultAnalyzerCacheSize)
		defaultResolverCache, _ = cache.New[string, resolver.ResolutionResult](config.DefaultResolverCacheSize)
	})
}

// DefaultCaches returns the shared default cache pair.
func DefaultCaches() (*cache.Bounded[string, *analyzer.TypeNode], *cache.Bounded[string, resolver.ResolutionResult]) {
	initDefaults()
	return defaultAnalyzerCache, defaultResolverCache
}

// ResetDefaultCaches clears the shared caches and their counters.
func ResetDefaultCaches() {
	initDefaults()
	defaultAnalyzerCache.Clear()
	defaultResolverCache.Clear()
}
