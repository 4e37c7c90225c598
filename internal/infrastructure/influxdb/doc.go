// Package influxdb records property changes in InfluxDB v2.
//
// Every accepted change becomes one point in the property_values
// measurement, tagged with device_id, key and type:
//
//	property_values,device_id=boiler-01,key=setpoint,type=double value=21.5
//	property_values,device_id=boiler-01,key=enabled,type=bool state=true
//	property_values,device_id=boiler-01,key=bg,type=color text="#00ff00"
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WritePropertyMetric("boiler-01", "setpoint", property.DoubleValue(21.5))
//
// # Error Handling
//
// Writes are non-blocking and batched (batch_size, flush_interval). Batch
// failures are delivered to the SetOnError callback. Connection and health
// check errors are returned directly.
package influxdb
