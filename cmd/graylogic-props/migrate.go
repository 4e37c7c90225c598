package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/database"
)

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the snapshot database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDatabase(opts, func(db *database.DB) error {
					if err := db.Migrate(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDatabase(opts, func(db *database.DB) error {
					if err := db.MigrateDown(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDatabase(opts, func(db *database.DB) error {
					applied, pending, err := db.MigrationStatus(cmd.Context())
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "VERSION\tSTATE\tDETAIL")
					for _, r := range applied {
						fmt.Fprintf(tw, "%s\tapplied\t%s\n", r.Version, r.AppliedAt.Format(time.RFC3339))
					}
					for _, m := range pending {
						fmt.Fprintf(tw, "%s\tpending\t%s\n", m.Version, m.Name)
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}

// withDatabase opens the configured database without migrating it.
func withDatabase(opts *globalOptions, fn func(db *database.DB) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	db, err := openUnmigrated(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // CLI exit
	return fn(db)
}
