package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrPersistence = errors.New("persistence failed")
)
