//go:build linux

package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

// fakeSysfs lays out class/power_supply/<name>/<attr> files under a temp dir.
func fakeSysfs(t *testing.T, supplies map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, attrs := range supplies {
		dir := filepath.Join(root, "class", "power_supply", name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		for attr, value := range attrs {
			require.NoError(t, os.WriteFile(filepath.Join(dir, attr), []byte(value), 0644))
		}
	}
	return root
}

func readSysfsOnce(t *testing.T, root string) notify.Extras {
	t.Helper()
	p, err := NewSysfs(root, time.Hour)
	require.NoError(t, err)
	extras, err := p.read()
	require.NoError(t, err)
	return extras
}

func TestSysfsLaptopOnAC(t *testing.T) {
	root := fakeSysfs(t, map[string]map[string]string{
		"AC": {"type": "Mains", "online": "1"},
		"BAT0": {
			"type":        "Battery",
			"status":      "Charging",
			"energy_now":  "41230000",
			"energy_full": "52110000",
			"capacity":    "79",
		},
	})

	assert.Equal(t, notify.Extras{
		notify.ExtraLevel:   41230000,
		notify.ExtraScale:   52110000,
		notify.ExtraPlugged: battery.PluggedAC,
		notify.ExtraStatus:  battery.StatusCharging,
	}, readSysfsOnce(t, root))
}

func TestSysfsPhoneOnUSB(t *testing.T) {
	root := fakeSysfs(t, map[string]map[string]string{
		"ac":       {"type": "Mains", "online": "0"},
		"usb":      {"type": "USB", "online": "1"},
		"wireless": {"type": "Wireless", "online": "0"},
		"battery":  {"type": "Battery", "status": "Not charging", "capacity": "100"},
	})

	assert.Equal(t, notify.Extras{
		notify.ExtraLevel:   100,
		notify.ExtraScale:   100,
		notify.ExtraPlugged: battery.PluggedUSB,
		notify.ExtraStatus:  battery.StatusNotCharging,
	}, readSysfsOnce(t, root))
}

func TestSysfsOnBattery(t *testing.T) {
	root := fakeSysfs(t, map[string]map[string]string{
		"ADP1": {"type": "Mains", "online": "0"},
		"BAT1": {"type": "Battery", "status": "Discharging", "charge_now": "2000000", "charge_full": "4000000"},
	})

	extras := readSysfsOnce(t, root)
	assert.Equal(t, battery.PluggedNone, extras[notify.ExtraPlugged])
	assert.Equal(t, battery.StatusDischarging, extras[notify.ExtraStatus])

	pct, ok := battery.Decode(extras).Percentage()
	require.True(t, ok)
	assert.InDelta(t, 50.0, pct, 1e-9)
}

func TestSysfsDesktopWithoutBattery(t *testing.T) {
	root := fakeSysfs(t, map[string]map[string]string{
		"AC": {"type": "Mains", "online": "1"},
	})

	extras := readSysfsOnce(t, root)
	assert.Equal(t, notify.Extras{notify.ExtraPlugged: battery.PluggedAC}, extras)

	_, ok := battery.Decode(extras).Percentage()
	assert.False(t, ok)
}

func TestSysfsStatusCode(t *testing.T) {
	tests := []struct {
		status string
		want   int
		ok     bool
	}{
		{status: "Charging", want: battery.StatusCharging, ok: true},
		{status: "Discharging", want: battery.StatusDischarging, ok: true},
		{status: "Not charging", want: battery.StatusNotCharging, ok: true},
		{status: "Full", want: battery.StatusFull, ok: true},
		{status: "Unknown", want: battery.StatusUnknown, ok: true},
		{status: "", ok: false},
		{status: "Exploding", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, ok := sysfsStatusCode(tt.status)
			if ok != tt.ok || got != tt.want {
				t.Errorf("sysfsStatusCode(%q) = %v, %v, want %v, %v", tt.status, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewSysfsMissingMountPoint(t *testing.T) {
	_, err := NewSysfs(filepath.Join(t.TempDir(), "missing"), time.Second)
	assert.Error(t, err)
}
