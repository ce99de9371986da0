package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyAdjudicated = errors.New("submission already adjudicated")
)
