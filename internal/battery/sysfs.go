package battery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/vrekk/battstat/internal/errors"
	"codeberg.org/vrekk/battstat/internal/logger"
)

// Battery devices appear as BAT<digits> directly under the power-supply
// root; anything else (AC adapters, USB ports) is not a battery.
var batteryPattern = regexp.MustCompile(`^BAT\d+$`)

var errFactory = errors.New()

// Discover lists battery device names directly under root, in directory
// order. Non-battery entries are silently skipped. An unlistable root is an
// error: there is no degraded mode.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errFactory.Wrap(ErrDiscoveryFailed, err)
	}

	var names []string
	for _, entry := range entries {
		if batteryPattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	logger.Debug().Strs("batteries", names).Str("root", root).Msg("Discovered battery devices")

	return names, nil
}

// ReadDevice reads one battery's instantaneous telemetry from
// <root>/<name>. Any missing attribute file or malformed value fails the
// read; the error identifies the device and the offending value.
func ReadDevice(root, name string) (Device, error) {
	device := Device{Name: name}

	var err error
	if device.EnergyNow, err = readUintAttribute(root, name, "energy_now"); err != nil {
		return Device{}, err
	}
	if device.EnergyFull, err = readUintAttribute(root, name, "energy_full"); err != nil {
		return Device{}, err
	}
	if device.PowerNow, err = readUintAttribute(root, name, "power_now"); err != nil {
		return Device{}, err
	}

	raw, err := readAttribute(root, name, "status")
	if err != nil {
		return Device{}, err
	}
	if device.Status, err = ParseStatus(raw); err != nil {
		return Device{}, errFactory.WithData(ErrUnrecognizedStatus, fmt.Sprintf("%s: %q", name, raw))
	}

	return device, nil
}

// ReadAll discovers all batteries under root and reads each one. A single
// unreadable or malformed device fails the whole read.
func ReadAll(root string) ([]Device, error) {
	names, err := Discover(root)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(names))
	for _, name := range names {
		device, err := ReadDevice(root, name)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	return devices, nil
}

func readAttribute(root, name, attr string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(root, name, attr))
	if err != nil {
		return "", errFactory.Wrap(ErrAttributeReadFailed, err)
	}

	return strings.TrimSpace(string(raw)), nil
}

func readUintAttribute(root, name, attr string) (uint64, error) {
	raw, err := readAttribute(root, name, attr)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errFactory.WithData(ErrAttributeParseFailed, fmt.Sprintf("%s/%s: %q", name, attr, raw))
	}

	return value, nil
}
