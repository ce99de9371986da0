package config

import "errors"

// Sentinel kinds for configuration failures, errors.Is-friendly.
var (
	// ErrInvalidConfig flags a loaded value outside the game's accepted
	// range (grid size, leaderboard cap).
	ErrInvalidConfig = errors.New("invalid bingo configuration")

	// ErrLoadConfig wraps provider failures while layering the defaults,
	// file, and environment sources.
	ErrLoadConfig = errors.New("configuration load failed")
)
