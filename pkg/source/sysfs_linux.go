//go:build linux

package source

import (
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/procfs/sysfs"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

// DefaultSysMountPoint is where sysfs is mounted.
const DefaultSysMountPoint = "/sys"

// NewSysfs returns a Source polling /sys/class/power_supply under mountPoint.
func NewSysfs(mountPoint string, interval time.Duration) (*Poller, error) {
	fs, err := sysfs.NewFS(mountPoint)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open sysfs at %s", mountPoint)
	}

	return NewPoller("sysfs", interval, func() (notify.Extras, error) {
		psc, err := fs.PowerSupplyClass()
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to read power supply class")
		}
		return extrasFromPowerSupplies(psc), nil
	}), nil
}

// extrasFromPowerSupplies picks the first battery (by name) for level and
// status, and the online external supplies for the plugged code.
func extrasFromPowerSupplies(psc sysfs.PowerSupplyClass) notify.Extras {
	names := make([]string, 0, len(psc))
	for name := range psc {
		names = append(names, name)
	}
	sort.Strings(names)

	extras := notify.Extras{}

	var bat *sysfs.PowerSupply
	externals := 0
	plugged := battery.PluggedNone
	for _, name := range names {
		ps := psc[name]

		if ps.Type == "Battery" {
			if bat == nil {
				bat = &ps
			}
			continue
		}

		code, ok := pluggedCode(ps.Type)
		if !ok {
			continue
		}
		externals++
		if ps.Online != nil && *ps.Online > 0 && pluggedPriority(code) > pluggedPriority(plugged) {
			plugged = code
		}
	}

	// Without any external supply listed we cannot tell.
	if externals > 0 {
		extras[notify.ExtraPlugged] = plugged
	}

	if bat == nil {
		return extras
	}

	switch {
	case bat.EnergyNow != nil && bat.EnergyFull != nil:
		extras[notify.ExtraLevel] = int(*bat.EnergyNow)
		extras[notify.ExtraScale] = int(*bat.EnergyFull)
	case bat.ChargeNow != nil && bat.ChargeFull != nil:
		extras[notify.ExtraLevel] = int(*bat.ChargeNow)
		extras[notify.ExtraScale] = int(*bat.ChargeFull)
	case bat.Capacity != nil:
		extras[notify.ExtraLevel] = int(*bat.Capacity)
		extras[notify.ExtraScale] = 100
	}

	if code, ok := sysfsStatusCode(bat.Status); ok {
		extras[notify.ExtraStatus] = code
	}

	return extras
}

func pluggedCode(supplyType string) (int, bool) {
	switch {
	case supplyType == "Mains":
		return battery.PluggedAC, true
	case strings.HasPrefix(supplyType, "USB"):
		return battery.PluggedUSB, true
	case supplyType == "Wireless":
		return battery.PluggedWireless, true
	}
	return 0, false
}

// pluggedPriority ranks sources when several are online at once.
func pluggedPriority(code int) int {
	switch code {
	case battery.PluggedAC:
		return 3
	case battery.PluggedUSB:
		return 2
	case battery.PluggedWireless:
		return 1
	}
	return 0
}

func sysfsStatusCode(status string) (int, bool) {
	switch status {
	case "Charging":
		return battery.StatusCharging, true
	case "Discharging":
		return battery.StatusDischarging, true
	case "Not charging":
		return battery.StatusNotCharging, true
	case "Full":
		return battery.StatusFull, true
	case "Unknown":
		return battery.StatusUnknown, true
	}
	return 0, false
}
