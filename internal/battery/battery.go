package battery

import (
	"codeberg.org/vrekk/battstat/internal/errors"
)

// Status classifies the charge direction of a battery. The sysfs "Full" and
// "Unknown" states both collapse into Unknown: the battery is neither
// charging nor discharging, e.g. held at a plateau by a charge-limiting
// policy.
type Status int

const (
	Unknown Status = iota
	Charging
	Discharging
)

var statusNames = [...]string{"Unknown", "Charging", "Discharging"}

func (s Status) String() string {
	return statusNames[s]
}

// ParseStatus maps a raw sysfs status string onto a Status. The mapping is
// exact and case-sensitive; any unlisted string is an error.
func ParseStatus(raw string) (Status, error) {
	switch raw {
	case "Charging":
		return Charging, nil
	case "Discharging":
		return Discharging, nil
	case "Unknown", "Full":
		return Unknown, nil
	default:
		return Unknown, errors.New().WithData(ErrUnrecognizedStatus, raw)
	}
}

// Device is one snapshot of a physical battery. Units are as provided by
// sysfs: energies in mWh, power in mW. The direction of power flow is carried
// by Status, not by sign.
type Device struct {
	Name       string
	EnergyNow  uint64
	EnergyFull uint64
	PowerNow   uint64
	Status     Status
}
