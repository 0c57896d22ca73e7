//go:build linux

package source

import (
	"context"
	"math"

	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

const (
	upowerDest        = "org.freedesktop.UPower"
	upowerIface       = "org.freedesktop.UPower"
	upowerDeviceIface = "org.freedesktop.UPower.Device"
	upowerPath        = dbus.ObjectPath("/org/freedesktop/UPower")
	displayDevicePath = dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")

	// upowerScale keeps one decimal of the UPower percentage.
	upowerScale = 1000
)

// UPower device states.
const (
	upowerStateUnknown uint32 = iota
	upowerStateCharging
	upowerStateDischarging
	upowerStateEmpty
	upowerStateFullyCharged
	upowerStatePendingCharge
	upowerStatePendingDischarge
)

// UPower is a Source listening to the UPower daemon on the system bus.
// It reads the current values once and again on every PropertiesChanged
// signal of the display device or the daemon.
type UPower struct {
	conn *dbus.Conn
}

// NewUPower connects to the system bus and checks that UPower answers.
func NewUPower() (*UPower, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect to system bus")
	}

	u := &UPower{conn: conn}
	if _, err := u.read(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return u, nil
}

func (u *UPower) Name() string {
	return "upower"
}

func (u *UPower) Run(ctx context.Context, publish func(notify.Extras)) error {
	defer func() {
		if err := u.conn.Close(); err != nil {
			logrus.Warnf("failed to close system bus connection: %v", err)
		}
	}()

	for _, p := range []dbus.ObjectPath{upowerPath, displayDevicePath} {
		err := u.conn.AddMatchSignal(
			dbus.WithMatchObjectPath(p),
			dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
			dbus.WithMatchMember("PropertiesChanged"),
		)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to subscribe to %s", p)
		}
	}

	signals := make(chan *dbus.Signal, 16)
	u.conn.Signal(signals)
	defer u.conn.RemoveSignal(signals)

	update := func() {
		extras, err := u.read()
		if err != nil {
			logrus.WithField("source", u.Name()).Errorf("failed to read battery telemetry: %v", err)
			return
		}
		publish(extras)
	}

	update()

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return pkgerrors.New("system bus connection closed")
			}
			logrus.WithField("path", sig.Path).Trace("received PropertiesChanged")
			update()
		}
	}
}

func (u *UPower) read() (notify.Extras, error) {
	dev := u.conn.Object(upowerDest, displayDevicePath)

	present, err := dev.GetProperty(upowerDeviceIface + ".IsPresent")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read IsPresent")
	}
	percentage, err := dev.GetProperty(upowerDeviceIface + ".Percentage")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read Percentage")
	}
	state, err := dev.GetProperty(upowerDeviceIface + ".State")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read State")
	}

	r := upowerReading{}
	r.present, _ = present.Value().(bool)
	r.percentage, _ = percentage.Value().(float64)
	r.state, _ = state.Value().(uint32)

	onBattery, err := u.conn.Object(upowerDest, upowerPath).GetProperty(upowerIface + ".OnBattery")
	if err == nil {
		r.onBattery, r.onBatteryKnown = onBattery.Value().(bool)
	} else {
		logrus.Debugf("failed to read OnBattery: %v", err)
	}

	return r.extras(), nil
}

type upowerReading struct {
	present        bool
	percentage     float64
	state          uint32
	onBattery      bool
	onBatteryKnown bool
}

func (r upowerReading) extras() notify.Extras {
	extras := notify.Extras{}

	if r.onBatteryKnown {
		// UPower does not say which kind of external supply is connected.
		if r.onBattery {
			extras[notify.ExtraPlugged] = battery.PluggedNone
		} else {
			extras[notify.ExtraPlugged] = battery.PluggedAC
		}
	}

	if !r.present {
		return extras
	}

	extras[notify.ExtraLevel] = int(math.Round(r.percentage * upowerScale / 100))
	extras[notify.ExtraScale] = upowerScale

	switch r.state {
	case upowerStateCharging:
		extras[notify.ExtraStatus] = battery.StatusCharging
	case upowerStateDischarging, upowerStateEmpty:
		extras[notify.ExtraStatus] = battery.StatusDischarging
	case upowerStateFullyCharged:
		extras[notify.ExtraStatus] = battery.StatusFull
	case upowerStatePendingCharge, upowerStatePendingDischarge:
		extras[notify.ExtraStatus] = battery.StatusNotCharging
	default:
		extras[notify.ExtraStatus] = battery.StatusUnknown
	}

	return extras
}
