package source

import (
	"math"
	"time"

	hostbattery "github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

// NewBattery returns a Source polling the OS battery API through
// distatus/battery. It works on every platform that library supports.
func NewBattery(interval time.Duration) *Poller {
	return NewPoller("battery", interval, readBattery)
}

func readBattery() (notify.Extras, error) {
	batteries, err := hostbattery.GetAll()
	if len(batteries) == 0 {
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to get batteries")
		}
		return nil, pkgerrors.New("no batteries found")
	}
	if err != nil {
		// Partial errors still leave some fields usable.
		logrus.Debugf("battery info is incomplete: %v", err)
	}

	bat := batteries[0] // Only the first battery is shown.
	if bat == nil {
		return nil, pkgerrors.New("no batteries found")
	}

	extras := extrasFromBattery(bat)

	if err := addPlatformExtras(extras); err != nil {
		logrus.Tracef("platform battery probe not available: %v", err)
	}

	return extras, nil
}

func extrasFromBattery(bat *hostbattery.Battery) notify.Extras {
	extras := notify.Extras{}

	if bat.Full > 0 {
		extras[notify.ExtraLevel] = int(math.Round(bat.Current))
		extras[notify.ExtraScale] = int(math.Round(bat.Full))
	}

	switch bat.State {
	case hostbattery.Charging:
		extras[notify.ExtraStatus] = battery.StatusCharging
	case hostbattery.Discharging, hostbattery.Empty:
		extras[notify.ExtraStatus] = battery.StatusDischarging
	case hostbattery.Full:
		extras[notify.ExtraStatus] = battery.StatusFull
	default:
		extras[notify.ExtraStatus] = battery.StatusUnknown
	}

	return extras
}
