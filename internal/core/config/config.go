package config

type Config struct {
	Version       int           `toml:"version"`
	Caches        Caches        `toml:"caches"`
	Render        Render        `toml:"render"`
	Exclude       Exclude       `toml:"exclude"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
}

type Caches struct {
	Analyzer CacheSettings `toml:"analyzer"`
	Resolver CacheSettings `toml:"resolver"`
}

type CacheSettings struct {
	Enabled *bool `toml:"enabled"`
	MaxSize int   `toml:"max_size"`
}

// IsEnabled defaults to true when the flag is omitted.
func (c CacheSettings) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

type Render struct {
	MaxDepth int `toml:"max_depth"`
}

type Exclude struct {
	// RefIDs are glob patterns matched against entity RefIds; matching
	// entities are skipped during generation.
	RefIDs []string `toml:"ref_ids"`
}

type Output struct {
	Dir             string `toml:"dir"`
	FrontMatter     bool   `toml:"front_matter"`
	TableOfContents bool   `toml:"table_of_contents"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}
