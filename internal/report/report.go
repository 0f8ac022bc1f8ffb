package report

import (
	"fmt"
	"time"

	"codeberg.org/vrekk/battstat/internal/battery"
)

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Report is the aggregate view of every battery on the machine: one charge
// fraction, one status, and one linear time estimate whose meaning depends
// on the status (time to empty when discharging, time to full when charging,
// zero otherwise).
type Report struct {
	Percentage   float64
	Status       battery.Status
	TimeEstimate time.Duration
}

// Build folds a set of battery readings into one aggregate report.
// threshold is the charge-threshold fraction: a configured ceiling below
// 100% at which a charge-limiting policy stops charging.
func Build(devices []battery.Device, threshold float64) Report {
	var totalNow, totalFull, totalDraw uint64
	for _, device := range devices {
		totalNow += device.EnergyNow
		totalFull += device.EnergyFull
		totalDraw += device.PowerNow
	}

	status := resolveStatus(devices)

	return Report{
		Percentage:   percentage(totalNow, totalFull),
		Status:       status,
		TimeEstimate: timeEstimate(status, totalNow, totalFull, totalDraw, threshold),
	}
}

// resolveStatus is an ordered first-match scan, not a vote: the first
// battery found actively charging or discharging decides for the whole
// machine. Assumes all batteries share one effective direction.
func resolveStatus(devices []battery.Device) battery.Status {
	for _, device := range devices {
		switch device.Status {
		case battery.Charging:
			return battery.Charging
		case battery.Discharging:
			return battery.Discharging
		}
	}

	return battery.Unknown
}

func percentage(now, full uint64) float64 {
	if full == 0 {
		return 0
	}

	return float64(now) / float64(full)
}

// timeEstimate is a linear projection assuming constant power draw,
// truncated to whole seconds. Zero draw yields a zero estimate rather than
// a non-finite duration.
func timeEstimate(status battery.Status, now, full, draw uint64, threshold float64) time.Duration {
	if draw == 0 {
		return 0
	}

	var hours float64
	switch status {
	case battery.Discharging:
		hours = float64(now) / float64(draw)
	case battery.Charging:
		hours = (float64(full)*threshold - float64(now)) / float64(draw)
		if hours < 0 {
			hours = 0
		}
	default:
		return 0
	}

	return time.Duration(hours*secondsPerHour) * time.Second
}

// String formats the report as a status-bar line: a two-decimal percentage
// followed by a signed H:MM annotation when the machine is charging or
// discharging. Hours are unpadded, minutes zero-padded and truncated to the
// minute.
func (r Report) String() string {
	return fmt.Sprintf("%.2f%%%s", r.Percentage*100, r.annotation())
}

func (r Report) annotation() string {
	seconds := int64(r.TimeEstimate / time.Second)
	hours := seconds / secondsPerHour
	minutes := seconds % secondsPerHour / secondsPerMinute

	switch r.Status {
	case battery.Charging:
		return fmt.Sprintf(" (+%d:%02d)", hours, minutes)
	case battery.Discharging:
		return fmt.Sprintf(" (-%d:%02d)", hours, minutes)
	default:
		return ""
	}
}
