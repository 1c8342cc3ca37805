package pipeline

import (
	"runtime"
	"time"

	"docshape/internal/cache"
	"docshape/internal/diagnostic"
)

// Config controls a Processor.
type Config struct {
	// Workers bounds ProcessAll parallelism. Values below 1 mean GOMAXPROCS.
	Workers int
	// CacheSize bounds the rule-set and path caches.
	CacheSize int
	// CacheTTL expires cache entries. Zero disables expiry.
	CacheTTL time.Duration
	// Policy applies to directive application and validation.
	Policy diagnostic.Policy
	// WrapPath nests every validated document under this path when set.
	WrapPath string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		CacheSize: cache.DefaultSize,
		Policy:    diagnostic.FailFast,
	}
}

func (c Config) cacheOptions() cache.Options {
	return cache.Options{Size: c.CacheSize, TTL: c.CacheTTL}
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}

	return c.Workers
}
