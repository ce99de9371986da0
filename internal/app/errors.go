package service

import "errors"

// Sentinel kinds for card-lifecycle precondition violations.
var (
	ErrAlreadyHasCard = errors.New("player already has an active card")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidCell    = errors.New("invalid cell position")
	ErrNoBingoYet     = errors.New("no bingo achieved yet")
	ErrAlreadyClaimed = errors.New("win already claimed")
)

// ErrBackupUnsupported is returned when the configured store cannot write
// or read whole-state backup files.
var ErrBackupUnsupported = errors.New("store does not support backups")
