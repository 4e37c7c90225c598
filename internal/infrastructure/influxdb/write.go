package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-props/internal/property"
)

// Measurements.
const (
	// MeasurementPropertyValues is the measurement every property change lands in.
	MeasurementPropertyValues = "property_values"

	// MeasurementSnapshotSaved records each stored snapshot.
	MeasurementSnapshotSaved = "snapshot_saved"
)

// Field names. Numbers, booleans and text use separate fields because
// InfluxDB fixes a field's type per measurement.
const (
	FieldValue = "value" // float, for INT, LONG, FLOAT and DOUBLE
	FieldState = "state" // bool
	FieldText  = "text"  // string, for STRING and COLOR
)

// WritePropertyMetric records the current value of one property.
// The write is non-blocking; it is dropped when the client is closed.
//
// Example:
//
//	client.WritePropertyMetric("boiler-01", "setpoint", property.DoubleValue(21.5))
//	// property_values,device_id=boiler-01,key=setpoint,type=double value=21.5
func (c *Client) WritePropertyMetric(deviceID, key string, v property.Value) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(PropertyPoint(deviceID, key, v, time.Now()))
}

// PropertyPoint builds the point WritePropertyMetric sends.
func PropertyPoint(deviceID, key string, v property.Value, ts time.Time) *write.Point {
	tags := map[string]string{
		"device_id": deviceID,
		"key":       key,
		"type":      v.Type().String(),
	}
	return write.NewPoint(MeasurementPropertyValues, tags, propertyFields(v), ts)
}

func propertyFields(v property.Value) map[string]interface{} {
	if f, ok := v.Float64(); ok {
		return map[string]interface{}{FieldValue: f}
	}
	if v.Type() == property.TypeBool {
		return map[string]interface{}{FieldState: v.Bool()}
	}
	return map[string]interface{}{FieldText: v.Str()}
}

// WriteSnapshotMetric records that a snapshot holding count properties was
// stored for deviceID, tagged with the reason it was written.
//
// Example:
//
//	client.WriteSnapshotMetric("boiler-01", "autosave", 7)
//	// snapshot_saved,device_id=boiler-01,reason=autosave properties=7i
func (c *Client) WriteSnapshotMetric(deviceID, reason string, count int) {
	c.WritePoint(MeasurementSnapshotSaved,
		map[string]string{"device_id": deviceID, "reason": reason},
		map[string]interface{}{"properties": count},
	)
}

// WritePoint writes a custom point stamped with the current time.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, time.Now()))
}
