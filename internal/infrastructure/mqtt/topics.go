package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes.
const (
	// TopicPrefixProps is the base for per-device property topics:
	// graylogic/props/{device}/{channel}
	TopicPrefixProps = "graylogic/props"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "graylogic/system"
)

// Topics builds the MQTT topics used by the property service.
//
//	topics := mqtt.Topics{}
//	topics.PropsState("boiler-01")
//	// Returns: "graylogic/props/boiler-01/state"
type Topics struct{}

// =============================================================================
// Property Topics
// =============================================================================

// PropsState is the retained topic carrying the full property document.
//
// Example: graylogic/props/boiler-01/state
func (Topics) PropsState(deviceID string) string {
	return propsTopic(deviceID, "state")
}

// PropsSet receives patch documents; each member is applied as a Set.
//
// Example: graylogic/props/boiler-01/set
func (Topics) PropsSet(deviceID string) string {
	return propsTopic(deviceID, "set")
}

// PropsReset receives reset requests: an empty payload resets every
// property, a JSON array of keys resets only those.
//
// Example: graylogic/props/boiler-01/reset
func (Topics) PropsReset(deviceID string) string {
	return propsTopic(deviceID, "reset")
}

// PropsError carries failure reports for rejected remote commands.
//
// Example: graylogic/props/boiler-01/error
func (Topics) PropsError(deviceID string) string {
	return propsTopic(deviceID, "error")
}

func propsTopic(deviceID, channel string) string {
	return fmt.Sprintf("%s/%s/%s", TopicPrefixProps, deviceID, channel)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the service status topic used for online/offline and LWT.
//
// Example: graylogic/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// validatePublishTopic rejects empty topics and topics containing wildcards,
// which brokers refuse on publish.
func validatePublishTopic(topic string) error {
	if topic == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTopic)
	}
	if strings.ContainsAny(topic, "+#") {
		return fmt.Errorf("%w: wildcard in publish topic %q", ErrInvalidTopic, topic)
	}
	return nil
}
