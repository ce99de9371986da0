// Package types contains common types used across the application
package types

import "time"

// Entry represents a leaderboard row aggregated per (username, platform).
type Entry struct {
	Rank          int       `json:"rank"`
	Username      string    `json:"username"`
	Platform      string    `json:"platform"`
	TotalPoints   int       `json:"total_points"`
	Wins          int       `json:"wins"`
	BestPlacement int       `json:"best_placement"`
	LastWin       time.Time `json:"last_win"`
}
