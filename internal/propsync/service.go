package propsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-props/internal/property"
	"github.com/nerrad567/gray-logic-props/internal/snapshot"
)

// Logger defines the logging interface used by the Service.
// Compatible with *logging.Logger and *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MQTTClient is the subset of *mqtt.Client the service needs.
type MQTTClient interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Metrics records accepted property changes and stored snapshots.
// Implemented by *influxdb.Client.
type Metrics interface {
	WritePropertyMetric(deviceID, key string, v property.Value)
	WriteSnapshotMetric(deviceID, reason string, count int)
}

// Options configure a Service.
type Options struct {
	// DeviceID scopes MQTT topics and snapshot rows.
	DeviceID string

	// QoS for subscriptions and error reports. Retained state is published
	// at the MQTT client's configured QoS.
	QoS byte

	// AutosaveInterval batches snapshot writes: changes mark the registry
	// dirty and the next tick persists it. Zero persists every change
	// immediately.
	AutosaveInterval time.Duration

	// Retention is the number of snapshots kept after each save. Values
	// below 1 keep everything.
	Retention int

	// PublishOnChange publishes the state document after every change.
	PublishOnChange bool
}

// Dependencies are the optional collaborators of a Service. Any of them
// may be nil; the matching feature is then skipped.
type Dependencies struct {
	Repository snapshot.Repository
	MQTT       MQTTClient
	Metrics    Metrics
	Logger     Logger
}

// Service owns a property registry on behalf of one device and keeps it in
// sync with its snapshot store, the MQTT bus and the metrics backend.
//
// Thread Safety: every method is safe for concurrent use. All registry
// access goes through View and Update, which serialise on one mutex.
type Service struct {
	mu    sync.Mutex
	reg   *property.Registry
	dirty bool

	opts    Options
	repo    snapshot.Repository
	bus     MQTTClient
	metrics Metrics
	logger  Logger
	topics  mqtt.Topics

	runMu   sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a Service around reg. The caller must not touch reg directly
// afterwards.
func New(reg *property.Registry, opts Options, deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{
		reg:     reg,
		opts:    opts,
		repo:    deps.Repository,
		bus:     deps.MQTT,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

// DeviceID returns the device this service is scoped to.
func (s *Service) DeviceID() string {
	return s.opts.DeviceID
}

// View runs fn with exclusive read access to the registry.
// fn must not retain the registry after returning.
func (s *Service) View(fn func(r *property.Registry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.reg)
}

// Update runs a mutation and propagates every property whose value changed:
// a metric per changed key, a state publish and a snapshot (immediately, or
// on the next autosave tick). Changes applied before fn returned an error,
// such as the accepted part of a Patch, are propagated too. fn's error is
// returned unchanged; propagation failures are logged.
func (s *Service) Update(ctx context.Context, fn func(r *property.Registry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := valuesOf(s.reg)
	fnErr := fn(s.reg)
	changed := changedKeys(before, s.reg)

	if len(changed) > 0 {
		s.propagateLocked(ctx, changed)
	}
	return fnErr
}

// Restore loads the newest snapshot into the registry.
//
// A missing snapshot leaves the defaults in place. A snapshot that no
// longer matches the registry is applied best-effort: failing keys keep
// their defaults and are logged. Only storage errors are returned.
func (s *Service) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	snap, err := s.repo.Latest(ctx, s.opts.DeviceID)
	if errors.Is(err, snapshot.ErrSnapshotNotFound) {
		s.logger.Info("no stored snapshot, using defaults", "device_id", s.opts.DeviceID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading latest snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Deserialize(snap.Document); err != nil {
		var applyErr *property.ApplyError
		if errors.As(err, &applyErr) {
			s.logger.Warn("snapshot partially restored",
				"snapshot_id", snap.ID,
				"failed_keys", applyErr.Keys(),
				"error", err,
			)
			return nil
		}
		s.logger.Warn("snapshot unreadable, using defaults", "snapshot_id", snap.ID, "error", err)
		return nil
	}

	s.logger.Info("snapshot restored",
		"snapshot_id", snap.ID,
		"properties", snap.PropertyCount,
		"saved_at", snap.CreatedAt,
	)
	return nil
}

// Persist saves the current document as a manual snapshot and prunes old
// ones. A no-op without a repository.
func (s *Service) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx, snapshot.ReasonManual)
}

// Publish sends the current document to the retained state topic.
// A no-op without an MQTT client.
func (s *Service) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishLocked()
}

// Start publishes the current state, subscribes to the set and reset topics
// and, when AutosaveInterval is set, starts the autosave loop.
func (s *Service) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return ErrAlreadyStarted
	}

	if s.bus != nil {
		if err := s.Publish(); err != nil {
			s.logger.Warn("initial state publish failed", "error", err)
		}
		if err := s.bus.Subscribe(s.topics.PropsSet(s.opts.DeviceID), s.opts.QoS, s.handleSet(ctx)); err != nil {
			return fmt.Errorf("subscribing to set topic: %w", err)
		}
		if err := s.bus.Subscribe(s.topics.PropsReset(s.opts.DeviceID), s.opts.QoS, s.handleReset(ctx)); err != nil {
			_ = s.bus.Unsubscribe(s.topics.PropsSet(s.opts.DeviceID))
			return fmt.Errorf("subscribing to reset topic: %w", err)
		}
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	if s.opts.AutosaveInterval > 0 && s.repo != nil {
		go s.autosaveLoop(ctx, s.opts.AutosaveInterval)
	} else {
		close(s.done)
	}

	s.logger.Info("property sync started",
		"device_id", s.opts.DeviceID,
		"autosave_interval", s.opts.AutosaveInterval,
	)
	return nil
}

// Stop unsubscribes, ends the autosave loop and writes a final snapshot if
// anything changed since the last one.
func (s *Service) Stop(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	close(s.stop)
	<-s.done

	if s.bus != nil {
		for _, topic := range []string{s.topics.PropsSet(s.opts.DeviceID), s.topics.PropsReset(s.opts.DeviceID)} {
			if err := s.bus.Unsubscribe(topic); err != nil {
				s.logger.Debug("unsubscribe failed", "topic", topic, "error", err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.persistLocked(ctx, snapshot.ReasonShutdown)
}

// Dirty reports whether changes are waiting for the next autosave.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Service) autosaveLoop(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.dirty {
				if err := s.persistLocked(ctx, snapshot.ReasonAutosave); err != nil {
					s.logger.Error("autosave failed", "error", err)
				}
			}
			s.mu.Unlock()
		}
	}
}

// propagateLocked fans a set of changed keys out to metrics, MQTT and storage.
func (s *Service) propagateLocked(ctx context.Context, changed []string) {
	s.dirty = true

	if s.metrics != nil {
		for _, key := range changed {
			if v, ok := s.reg.Value(key); ok {
				s.metrics.WritePropertyMetric(s.opts.DeviceID, key, v)
			}
		}
	}

	if s.opts.PublishOnChange {
		if err := s.publishLocked(); err != nil {
			s.logger.Warn("state publish failed", "error", err)
		}
	}

	if s.opts.AutosaveInterval <= 0 {
		if err := s.persistLocked(ctx, snapshot.ReasonChange); err != nil {
			s.logger.Error("snapshot save failed", "error", err)
		}
	}

	s.logger.Debug("properties changed", "keys", changed)
}

func (s *Service) persistLocked(ctx context.Context, reason snapshot.Reason) error {
	if s.repo == nil {
		return nil
	}

	doc, err := s.reg.Serialize()
	if err != nil {
		return fmt.Errorf("serializing properties: %w", err)
	}

	snap := &snapshot.Snapshot{
		DeviceID:      s.opts.DeviceID,
		Document:      doc,
		PropertyCount: s.reg.Size(),
		Reason:        reason,
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	s.dirty = false

	if s.metrics != nil {
		s.metrics.WriteSnapshotMetric(s.opts.DeviceID, string(reason), snap.PropertyCount)
	}

	if s.opts.Retention > 0 {
		pruned, err := s.repo.Prune(ctx, s.opts.DeviceID, s.opts.Retention)
		if err != nil {
			s.logger.Warn("snapshot prune failed", "error", err)
		} else if pruned > 0 {
			s.logger.Debug("snapshots pruned", "removed", pruned)
		}
	}
	return nil
}

func (s *Service) publishLocked() error {
	if s.bus == nil {
		return nil
	}

	doc, err := s.reg.Serialize()
	if err != nil {
		return fmt.Errorf("serializing properties: %w", err)
	}
	return s.bus.PublishRetained(s.topics.PropsState(s.opts.DeviceID), doc)
}

// valuesOf captures every current value by key.
func valuesOf(r *property.Registry) map[string]property.Value {
	props := r.Properties()
	values := make(map[string]property.Value, len(props))
	for _, p := range props {
		values[p.Key] = p.Value
	}
	return values
}

// changedKeys lists, in index order, keys that are new or whose value differs
// from before.
func changedKeys(before map[string]property.Value, r *property.Registry) []string {
	var changed []string
	for _, p := range r.Properties() {
		if old, ok := before[p.Key]; !ok || !old.Equal(p.Value) {
			changed = append(changed, p.Key)
		}
	}
	return changed
}
