package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-props/internal/property"
	_ "github.com/nerrad567/gray-logic-props/migrations"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	schemaPath string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "graylogic-props",
		Short: "Typed property registry service for Gray Logic devices",
		Long: `graylogic-props keeps the configuration properties of a device:
typed values with defaults and bounds, restored from SQLite snapshots on
boot, changed over MQTT and published as a JSON document.

Running without a subcommand starts the service (same as "serve").`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: $GRAYLOGIC_CONFIG or "+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&opts.schemaPath, "schema", "",
		"property schema file (overrides properties.schema_file)")

	root.AddCommand(
		newServeCmd(opts),
		newValidateCmd(opts),
		newSchemaCmd(opts),
		newDumpCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return root
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// configFile resolves --config, then GRAYLOGIC_CONFIG, then the default.
func (o *globalOptions) configFile() (path string, explicit bool) {
	if o.configPath != "" {
		return o.configPath, true
	}
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path, true
	}
	return defaultConfigPath, false
}

// loadConfig loads the config file. When no file was named and the default
// one is absent, built-in defaults are used.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path, explicit := o.configFile()

	cfg, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Default()
		if vErr := cfg.Validate(); vErr != nil {
			return nil, fmt.Errorf("default config: %w", vErr)
		}
	}

	if o.schemaPath != "" {
		cfg.Properties.SchemaFile = o.schemaPath
	}
	return cfg, nil
}

// cliLogger sends log entries to the command stream named by logging.output.
func cliLogger(cfg *config.Config, cmd *cobra.Command) *logging.Logger {
	var w io.Writer
	switch strings.ToLower(cfg.Logging.Output) {
	case "stderr":
		w = cmd.ErrOrStderr()
	default:
		w = cmd.OutOrStdout()
	}
	return logging.New(cfg.Logging, version, w)
}

// loadRegistry builds the device's registry from its schema file.
func loadRegistry(cfg *config.Config) (*property.Registry, error) {
	schema, err := property.LoadSchema(cfg.Properties.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	reg := property.New()
	if err := schema.Apply(reg); err != nil {
		return nil, fmt.Errorf("applying schema %s: %w", cfg.Properties.SchemaFile, err)
	}
	return reg, nil
}

// openDatabase opens and migrates the snapshot database.
func openDatabase(cmd *cobra.Command, cfg *config.Config) (*database.DB, error) {
	db, err := openUnmigrated(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(cmd.Context()); err != nil {
		db.Close() //nolint:errcheck,gosec // already failing
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// openUnmigrated opens the configured database and leaves its schema alone.
func openUnmigrated(cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "graylogic-props %s\n", versionString())
		},
	}
}
