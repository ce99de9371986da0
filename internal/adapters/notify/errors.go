package notify

import "errors"

// Sentinel kinds for notification errors.
var (
	ErrPublish   = errors.New("notification publish failed")
	ErrSubscribe = errors.New("notification subscribe failed")
)
