package propsync

import "errors"

// Errors returned by the sync service.
var (
	// ErrAlreadyStarted is returned by Start on a running service.
	ErrAlreadyStarted = errors.New("propsync: already started")

	// ErrInvalidResetRequest is returned when a reset payload is neither
	// empty nor a JSON array of keys.
	ErrInvalidResetRequest = errors.New("propsync: reset payload must be empty or a JSON array of keys")
)
