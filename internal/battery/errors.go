package battery

import "codeberg.org/vrekk/battstat/internal/errors"

const (
	// Discovery Errors
	ErrDiscoveryFailed = errors.ErrorCode("battery_discovery_failed")

	// Telemetry Errors
	ErrAttributeReadFailed  = errors.ErrorCode("battery_attribute_read_failed")
	ErrAttributeParseFailed = errors.ErrorCode("battery_attribute_parse_failed")
	ErrUnrecognizedStatus   = errors.ErrorCode("battery_unrecognized_status")
)
