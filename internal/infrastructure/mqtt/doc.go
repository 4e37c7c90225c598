// Package mqtt connects the property service to its MQTT broker.
//
// This package manages:
//   - Connection with auto-reconnect and subscription restore
//   - Publish and subscribe with topic, QoS and payload validation
//   - Online/offline status with a Last Will for crash detection
//
// # Topics
//
//	graylogic/props/{device}/state   retained property document
//	graylogic/props/{device}/set     patch documents from controllers
//	graylogic/props/{device}/reset   reset requests (empty or ["key", ...])
//	graylogic/props/{device}/error   failure reports for rejected commands
//	graylogic/system/status          online/offline, retained
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.PropsSet("boiler-01"), 1,
//	    func(topic string, payload []byte) error {
//	        return svc.ApplyPatch(payload)
//	    })
//
//	client.PublishRetained(mqtt.Topics{}.PropsState("boiler-01"), doc)
package mqtt
