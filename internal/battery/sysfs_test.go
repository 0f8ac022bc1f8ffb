package battery_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/vrekk/battstat/internal/battery"
	"codeberg.org/vrekk/battstat/internal/errors"
	"codeberg.org/vrekk/battstat/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(false, false, true)
	os.Exit(m.Run())
}

func writeAttribute(t *testing.T, root, name, attr, contents string) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, attr), []byte(contents), 0o644))
}

func writeBattery(t *testing.T, root, name string, now, full, power, status string) {
	t.Helper()

	writeAttribute(t, root, name, "energy_now", now)
	writeAttribute(t, root, name, "energy_full", full)
	writeAttribute(t, root, name, "power_now", power)
	writeAttribute(t, root, name, "status", status)
}

func TestDiscoverFiltersBatteryNames(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"BAT0", "BAT1", "BAT12", "AC", "ADP1", "BATx", "bat0", "BAT", "XBAT0", "BAT0_old", "ucsi-source-psy-USBC000:001"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
	}

	names, err := battery.Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAT0", "BAT1", "BAT12"}, names)
}

func TestDiscoverEmptyRoot(t *testing.T) {
	names, err := battery.Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDiscoverUnlistableRoot(t *testing.T) {
	_, err := battery.Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, battery.ErrDiscoveryFailed, appErr.Code())
}

func TestReadDevice(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "5000\n", "10000\n", "1000\n", "Discharging\n")

	device, err := battery.ReadDevice(root, "BAT0")
	require.NoError(t, err)

	assert.Equal(t, "BAT0", device.Name)
	assert.Equal(t, uint64(5000), device.EnergyNow)
	assert.Equal(t, uint64(10000), device.EnergyFull)
	assert.Equal(t, uint64(1000), device.PowerNow)
	assert.Equal(t, battery.Discharging, device.Status)
}

func TestReadDeviceTrimsWhitespace(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT1", "  4200 \n", "\t8400\n", "2100\n\n", "  Charging\n")

	device, err := battery.ReadDevice(root, "BAT1")
	require.NoError(t, err)

	assert.Equal(t, uint64(4200), device.EnergyNow)
	assert.Equal(t, uint64(8400), device.EnergyFull)
	assert.Equal(t, uint64(2100), device.PowerNow)
	assert.Equal(t, battery.Charging, device.Status)
}

func TestReadDeviceMissingAttribute(t *testing.T) {
	root := t.TempDir()
	writeAttribute(t, root, "BAT0", "energy_now", "5000\n")
	writeAttribute(t, root, "BAT0", "energy_full", "10000\n")
	// power_now and status missing

	_, err := battery.ReadDevice(root, "BAT0")
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, battery.ErrAttributeReadFailed, appErr.Code())
}

func TestReadDeviceMalformedNumber(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "not-a-number\n", "10000\n", "1000\n", "Discharging\n")

	_, err := battery.ReadDevice(root, "BAT0")
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, battery.ErrAttributeParseFailed, appErr.Code())
	// Diagnostic identifies the device and the raw value
	assert.Contains(t, err.Error(), "BAT0")
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestReadDeviceNegativeNumber(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "5000\n", "10000\n", "-1000\n", "Discharging\n")

	_, err := battery.ReadDevice(root, "BAT0")
	require.Error(t, err)
}

func TestReadDeviceUnrecognizedStatus(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "5000\n", "10000\n", "1000\n", "Fully Charged\n")

	_, err := battery.ReadDevice(root, "BAT0")
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, battery.ErrUnrecognizedStatus, appErr.Code())
	assert.Contains(t, err.Error(), "BAT0")
	assert.Contains(t, err.Error(), "Fully Charged")
}

func TestReadAll(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "3000\n", "6000\n", "500\n", "Discharging\n")
	writeBattery(t, root, "BAT1", "2000\n", "4000\n", "500\n", "Discharging\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "AC"), 0o755))

	devices, err := battery.ReadAll(root)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	// Discovery order is directory order
	assert.Equal(t, "BAT0", devices[0].Name)
	assert.Equal(t, "BAT1", devices[1].Name)
}

func TestReadAllAbortsOnBadDevice(t *testing.T) {
	root := t.TempDir()
	writeBattery(t, root, "BAT0", "3000\n", "6000\n", "500\n", "Discharging\n")
	writeBattery(t, root, "BAT1", "2000\n", "4000\n", "500\n", "Bogus\n")

	_, err := battery.ReadAll(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAT1")
}

func TestReadAllNoBatteries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "AC"), 0o755))

	devices, err := battery.ReadAll(root)
	require.NoError(t, err)
	assert.Empty(t, devices)
}
