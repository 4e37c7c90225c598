package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-props/internal/snapshot"
)

// errSchemaNotCurrent is returned by read-only commands when the database
// has not been migrated to the schema this binary expects.
var errSchemaNotCurrent = errors.New("database schema is not current; run 'graylogic-props migrate up'")

// openForReading opens an existing, fully migrated database without
// changing it.
func openForReading(cmd *cobra.Command, cfg *config.Config) (*database.DB, error) {
	if _, err := os.Stat(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("no database at %s: %w", cfg.Database.Path, err)
	}

	db, err := openUnmigrated(cfg)
	if err != nil {
		return nil, err
	}
	_, pending, err := db.MigrationStatus(cmd.Context())
	if err != nil {
		db.Close() //nolint:errcheck,gosec // already failing
		return nil, err
	}
	if len(pending) > 0 {
		db.Close() //nolint:errcheck,gosec // already failing
		return nil, fmt.Errorf("%w (%d pending)", errSchemaNotCurrent, len(pending))
	}
	return db, nil
}

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var (
		list   int
		pretty bool
		device string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the latest stored property snapshot",
		Long: `Print the newest snapshot document for the configured device.

With --list N, print a table of the newest N snapshots instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if device == "" {
				device = cfg.Device.ID
			}

			db, err := openForReading(cmd, cfg)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // read-only use

			repo := snapshot.NewSQLiteRepository(db.DB)
			if list > 0 {
				snaps, err := repo.List(cmd.Context(), device, list)
				if err != nil {
					return err
				}
				return writeSnapshotList(cmd.OutOrStdout(), snaps)
			}

			snap, err := repo.Latest(cmd.Context(), device)
			if errors.Is(err, snapshot.ErrSnapshotNotFound) {
				return fmt.Errorf("no snapshot stored for device %q", device)
			}
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), snap.Document, pretty)
		},
	}

	cmd.Flags().IntVar(&list, "list", 0, "list the newest N snapshots")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the document")
	cmd.Flags().StringVar(&device, "device", "", "device id (default: device.id from config)")
	return cmd
}

// writeDocument prints doc, indented when pretty is set. Indenting keeps
// member order.
func writeDocument(w io.Writer, doc []byte, pretty bool) error {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			return fmt.Errorf("stored document is not valid JSON: %w", err)
		}
		doc = buf.Bytes()
	}
	_, err := fmt.Fprintf(w, "%s\n", doc)
	return err
}

func writeSnapshotList(w io.Writer, snaps []snapshot.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tREASON\tPROPERTIES")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Reason, s.PropertyCount)
	}
	return tw.Flush()
}
