package snapshot

import "errors"

// Domain errors for the snapshot package.
var (
	// ErrSnapshotNotFound is returned when a device has no stored snapshot.
	ErrSnapshotNotFound = errors.New("snapshot: not found")

	// ErrInvalidSnapshot is returned when a snapshot lacks a device ID or document.
	ErrInvalidSnapshot = errors.New("snapshot: invalid snapshot")
)
