// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory enrichment job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of enrichment workers.
	WorkerCount int `koanf:"worker_count"`

	// CacheDBPath locates the SQLite cache database. Empty keeps the
	// cache in memory only.
	CacheDBPath string `koanf:"cache_db_path"`

	// BriefEndpoint and BriefAPIKey configure the remote brief provider.
	BriefEndpoint string `koanf:"brief_endpoint"`
	BriefAPIKey   string `koanf:"brief_api_key"`

	// BriefRatePerSec and BriefBurst bound outbound provider traffic.
	BriefRatePerSec float64 `koanf:"brief_rate_per_sec"`
	BriefBurst      int     `koanf:"brief_burst"`

	// RosterEndpoint configures the roster provider for player photos.
	RosterEndpoint string `koanf:"roster_endpoint"`
	RosterAPIKey   string `koanf:"roster_api_key"`

	// DefaultContainerWidth is used when a layout request omits a width.
	DefaultContainerWidth float64 `koanf:"default_container_width"`
}

// New creates a Config using provided options. Context is accepted first
// to satisfy the project-wide convention; it is reserved for future use
// and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU() * 4,
		CacheDBPath:           "",
		BriefRatePerSec:       5,
		BriefBurst:            10,
		DefaultContainerWidth: 960,
	}
	return c
}
