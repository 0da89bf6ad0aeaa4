package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAnalyzerCacheSize = 256
	DefaultResolverCacheSize = 512
	DefaultMaxDepth          = 10
	DefaultOutputDir         = "docs"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateCaches(&cfg); err != nil {
		return nil, err
	}
	if err := validateRender(&cfg); err != nil {
		return nil, err
	}
	if err := validateExclude(&cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Caches.Analyzer.MaxSize == 0 {
		cfg.Caches.Analyzer.MaxSize = DefaultAnalyzerCacheSize
	}
	if cfg.Caches.Resolver.MaxSize == 0 {
		cfg.Caches.Resolver.MaxSize = DefaultResolverCacheSize
	}
	if cfg.Render.MaxDepth == 0 {
		cfg.Render.MaxDepth = DefaultMaxDepth
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
}
