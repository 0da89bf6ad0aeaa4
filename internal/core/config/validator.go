package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateCaches(cfg *Config) error {
	if cfg.Caches.Analyzer.IsEnabled() && cfg.Caches.Analyzer.MaxSize <= 0 {
		return fmt.Errorf("caches.analyzer.max_size must be positive, got %d", cfg.Caches.Analyzer.MaxSize)
	}
	if cfg.Caches.Resolver.IsEnabled() && cfg.Caches.Resolver.MaxSize <= 0 {
		return fmt.Errorf("caches.resolver.max_size must be positive, got %d", cfg.Caches.Resolver.MaxSize)
	}
	return nil
}

func validateRender(cfg *Config) error {
	if cfg.Render.MaxDepth < 0 {
		return fmt.Errorf("render.max_depth must be >= 0, got %d", cfg.Render.MaxDepth)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.RefIDs {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude.ref_ids[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.ref_ids[%d]: invalid glob %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}
