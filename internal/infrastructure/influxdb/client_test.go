package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-props/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-props/internal/property"
)

// fakeInflux answers /ping and records line-protocol bodies sent to /api/v2/write.
type fakeInflux struct {
	mu     sync.Mutex
	lines  []string
	status int
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/ping"):
		w.WriteHeader(http.StatusNoContent)
	case strings.HasSuffix(r.URL.Path, "/api/v2/write"):
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
			if line != "" {
				f.lines = append(f.lines, line)
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeInflux) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func newFakeServer(t *testing.T) (*fakeInflux, config.InfluxDBConfig) {
	t.Helper()
	fake := &fakeInflux{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return fake, config.InfluxDBConfig{
		Enabled:       true,
		URL:           srv.URL,
		Token:         "test-token",
		Org:           "graylogic",
		Bucket:        "props",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect(t *testing.T) {
	_, cfg := newFakeServer(t)

	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestConnect_Disabled(t *testing.T) {
	_, cfg := newFakeServer(t)
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := influxdb.Connect(config.InfluxDBConfig{Enabled: true, URL: url})
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_DefaultBatchSettings(t *testing.T) {
	_, cfg := newFakeServer(t)
	cfg.BatchSize = -1
	cfg.FlushInterval = 0

	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() with defaulted batch settings error = %v", err)
	}
	client.Close()
}

func TestClose(t *testing.T) {
	_, cfg := newFakeServer(t)
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}

	// Writes and flushes after Close are dropped.
	client.WritePropertyMetric("dev", "age", property.IntValue(1))
	client.Flush()
}

func TestClose_Nil(t *testing.T) {
	var client *influxdb.Client
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

// =============================================================================
// Write Tests
// =============================================================================

func TestWritePropertyMetric(t *testing.T) {
	fake, cfg := newFakeServer(t)
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	client.WritePropertyMetric("boiler-01", "setpoint", property.DoubleValue(21.5))
	client.WritePropertyMetric("boiler-01", "enabled", property.BoolValue(true))
	client.WritePropertyMetric("boiler-01", "bg", property.ColorValue("#00ff00"))
	client.Flush()

	lines := fake.written()
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines, want 3: %q", len(lines), lines)
	}

	wants := [][]string{
		{"property_values,", "device_id=boiler-01", "key=setpoint", "type=double", " value=21.5 "},
		{"key=enabled", "type=bool", " state=true "},
		{"key=bg", "type=color", ` text="#00ff00" `},
	}
	for i, parts := range wants {
		for _, part := range parts {
			if !strings.Contains(lines[i], part) {
				t.Errorf("line %d = %q, missing %q", i, lines[i], part)
			}
		}
	}
}

func TestWritePoint(t *testing.T) {
	fake, cfg := newFakeServer(t)
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	client.WritePoint("snapshot_saved", map[string]string{"device_id": "dev"}, map[string]interface{}{"count": 7})
	client.Flush()

	lines := fake.written()
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "snapshot_saved,device_id=dev count=7i ") {
		t.Errorf("lines = %q", lines)
	}
}

func TestWriteSnapshotMetric(t *testing.T) {
	fake, cfg := newFakeServer(t)
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	client.WriteSnapshotMetric("boiler-01", "autosave", 7)
	client.Flush()

	lines := fake.written()
	want := "snapshot_saved,device_id=boiler-01,reason=autosave properties=7i "
	if len(lines) != 1 || !strings.HasPrefix(lines[0], want) {
		t.Errorf("lines = %q, want prefix %q", lines, want)
	}
}

func TestWriteErrorsReachCallback(t *testing.T) {
	fake, cfg := newFakeServer(t)
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	fake.mu.Lock()
	fake.status = http.StatusBadRequest
	fake.mu.Unlock()

	errCh := make(chan error, 1)
	client.SetOnError(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	})

	client.WritePropertyMetric("dev", "age", property.IntValue(3))
	client.Flush()

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("callback received nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("write error never reached callback")
	}
}

// =============================================================================
// Point Encoding Tests
// =============================================================================

func TestPropertyPoint(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	tests := []struct {
		name  string
		value property.Value
		want  string
	}{
		{"int", property.IntValue(-4), `property_values,device_id=d,key=k,type=int value=-4 1700000000000000000`},
		{"long", property.LongValue(42), `property_values,device_id=d,key=k,type=long value=42 1700000000000000000`},
		{"float", property.FloatValue(1.5), `property_values,device_id=d,key=k,type=float value=1.5 1700000000000000000`},
		{"string", property.StringValue("hi"), `property_values,device_id=d,key=k,type=string text="hi" 1700000000000000000`},
		{"bool", property.BoolValue(false), `property_values,device_id=d,key=k,type=bool state=false 1700000000000000000`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := influxdb.PropertyPoint("d", "k", tt.value, ts)
			got := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}
