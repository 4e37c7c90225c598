package snapshot

import (
	"context"
	"time"
)

// Reason records what triggered a save.
type Reason string

// Save reasons.
const (
	ReasonChange   Reason = "change"
	ReasonAutosave Reason = "autosave"
	ReasonShutdown Reason = "shutdown"
	ReasonManual   Reason = "manual"
)

// Snapshot is one persisted property document.
// Document holds the exact bytes produced by property.Registry.Serialize.
type Snapshot struct {
	ID            string
	DeviceID      string
	Document      []byte
	PropertyCount int
	Reason        Reason
	CreatedAt     time.Time
}

// Repository persists property snapshots.
// The SQLite implementation is used in production; tests use in-memory fakes.
type Repository interface {
	// Save stores s. An empty ID is filled with a new UUID and a zero
	// CreatedAt with the current UTC time; both are written back to s.
	Save(ctx context.Context, s *Snapshot) error

	// Latest returns the newest snapshot for a device.
	// Returns ErrSnapshotNotFound if the device has none.
	Latest(ctx context.Context, deviceID string) (*Snapshot, error)

	// List returns up to limit snapshots for a device, newest first.
	List(ctx context.Context, deviceID string, limit int) ([]Snapshot, error)

	// Prune deletes all but the newest keep snapshots of a device and
	// returns the number removed.
	Prune(ctx context.Context, deviceID string, keep int) (int64, error)
}
