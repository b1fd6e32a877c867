package occurrence

import (
	"io"
	"log/slog"
	"time"
)

// EngineConfig holds configuration options for the occurrence engine
type EngineConfig struct {
	// Cache configuration
	CacheEnabled bool
	CacheConfig  CacheConfig

	// MaxPastTriggers caps the number of instants PastTriggers returns
	MaxPastTriggers int

	// Logger receives debug output; nil discards it
	Logger *slog.Logger
}

// DefaultEngineConfig provides sensible defaults for long-running callers
var DefaultEngineConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,

	MaxPastTriggers: 1000,
}

// HighPerformanceConfig keeps more resolutions for longer
var HighPerformanceConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      5000,
		CleanupInterval: 10 * time.Minute,
	},

	MaxPastTriggers: 1000,
}

// LowMemoryConfig is optimized for memory-constrained environments
var LowMemoryConfig = EngineConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 2 * time.Minute,
	},

	MaxPastTriggers: 100,
}

// DisabledCacheConfig turns off caching entirely
var DisabledCacheConfig = EngineConfig{
	CacheEnabled: false,

	MaxPastTriggers: 1000,
}

// Presets maps the names accepted by ConfigByName to their configurations
var Presets = map[string]EngineConfig{
	"default":          DefaultEngineConfig,
	"high-performance": HighPerformanceConfig,
	"low-memory":       LowMemoryConfig,
	"disabled-cache":   DisabledCacheConfig,
}

// ConfigByName looks up a preset by name
func ConfigByName(name string) (EngineConfig, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

// NewWithConfig creates an occurrence engine with custom configuration
func NewWithConfig(config EngineConfig) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var cache *ResolutionCache
	if config.CacheEnabled {
		cache = newResolutionCache(config.CacheConfig, logger)
	}

	return &Engine{
		cache:  cache,
		config: config,
		logger: logger,
	}
}
