package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500

	// timestampLayout is fixed-width so created_at sorts lexically.
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
)

// SQLiteRepository implements Repository using the property_snapshots table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed snapshot repository.
//
// Parameters:
//   - db: Open SQLite connection with migrations applied
//
// Returns:
//   - *SQLiteRepository: Repository instance ready for use
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save inserts a snapshot row.
func (r *SQLiteRepository) Save(ctx context.Context, s *Snapshot) error {
	if s == nil || s.DeviceID == "" || len(s.Document) == 0 {
		return ErrInvalidSnapshot
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.Reason == "" {
		s.Reason = ReasonChange
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO property_snapshots (id, device_id, document, property_count, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.DeviceID,
		string(s.Document),
		s.PropertyCount,
		string(s.Reason),
		s.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// Latest returns the newest snapshot for deviceID.
func (r *SQLiteRepository) Latest(ctx context.Context, deviceID string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, device_id, document, property_count, reason, created_at
		 FROM property_snapshots
		 WHERE device_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		deviceID,
	)

	s, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}
	return s, nil
}

// List returns snapshots for deviceID ordered newest first.
// limit defaults to 20 and is capped at 500.
func (r *SQLiteRepository) List(ctx context.Context, deviceID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, device_id, document, property_count, reason, created_at
		 FROM property_snapshots
		 WHERE device_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		deviceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// Prune keeps the newest keep snapshots of deviceID and deletes the rest.
func (r *SQLiteRepository) Prune(ctx context.Context, deviceID string, keep int) (int64, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM property_snapshots
		 WHERE device_id = ?
		   AND id NOT IN (
		     SELECT id FROM property_snapshots
		     WHERE device_id = ?
		     ORDER BY created_at DESC, rowid DESC
		     LIMIT ?
		   )`,
		deviceID,
		deviceID,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return removed, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var document, reason, createdAt string

	if err := row.Scan(&s.ID, &s.DeviceID, &document, &s.PropertyCount, &reason, &createdAt); err != nil {
		return nil, err
	}

	ts, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	s.Document = []byte(document)
	s.Reason = Reason(reason)
	s.CreatedAt = ts
	return &s, nil
}
