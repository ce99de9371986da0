package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrEventNotFound = errors.New("event not found")
)
