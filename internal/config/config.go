// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/streamkit/bingo/internal/domain/bingo"
	"github.com/streamkit/bingo/internal/domain/ledger"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir holds the JSON state files.
	DataDir string `koanf:"data_dir"`

	// BingoSize sets the grid dimension for new cards (3-7).
	BingoSize int `koanf:"bingo_size"`

	// FillPolicy selects win detection: self-report,
	// confirmed-or-self-report, or confirmed-only.
	FillPolicy string `koanf:"fill_policy"`

	// Points is the placement -> points table; index 0 is first place.
	Points []int `koanf:"points"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// NotifyBufferSize bounds each notification subscriber's buffer.
	NotifyBufferSize int `koanf:"notify_buffer_size"`
}

// New creates a Config with defaults mirroring the streamer tooling's
// stock settings (5x5 card, 100/75/50/25/10 points).
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DataDir:             "data",
		BingoSize:           5,
		FillPolicy:          bingo.PolicyConfirmedOrSelfReported,
		Points:              ledger.DefaultPoints,
		MaxLeaderboardLimit: 100,
		NotifyBufferSize:    64,
	}
}
