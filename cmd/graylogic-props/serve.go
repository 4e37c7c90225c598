package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-props/internal/propsync"
	"github.com/nerrad567/gray-logic-props/internal/snapshot"
)

// shutdownTimeout bounds the final snapshot write after a signal.
const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the property service until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

// runServe is the service lifecycle. It returns nil on a clean shutdown.
func runServe(cmd *cobra.Command, opts *globalOptions) error {
	ctx := cmd.Context()

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log := cliLogger(cfg, cmd)
	log.Info("starting Gray Logic Props",
		"version", version,
		"commit", commit,
		"build_date", date,
		"device_id", cfg.Device.ID,
	)

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	log.Info("schema loaded", "path", cfg.Properties.SchemaFile, "properties", reg.Size())

	db, err := openDatabase(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database ready", "path", cfg.Database.Path)

	deps := propsync.Dependencies{
		Repository: snapshot.NewSQLiteRepository(db.DB),
		Logger:     log.With("component", "propsync"),
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.With("component", "mqtt"))
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT connected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		deps.MQTT = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		deps.Metrics = influxClient
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	} else {
		log.Info("InfluxDB disabled")
	}

	svc := propsync.New(reg, propsync.Options{
		DeviceID:         cfg.Device.ID,
		QoS:              byte(cfg.MQTT.QoS), //nolint:gosec // validated 0-2
		AutosaveInterval: cfg.GetAutosaveInterval(),
		Retention:        cfg.Properties.SnapshotRetention,
		PublishOnChange:  cfg.Properties.PublishOnChange,
	}, deps)

	if err := svc.Restore(ctx); err != nil {
		return fmt.Errorf("restoring properties: %w", err)
	}

	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("starting property sync: %w", err)
	}

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	// ctx is already cancelled; the final snapshot gets its own deadline.
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := svc.Stop(stopCtx); err != nil {
		log.Error("final snapshot failed", "error", err)
	}

	log.Info("Gray Logic Props stopped")
	return nil
}

// healthCheck verifies every enabled connection. Nil clients are skipped.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
