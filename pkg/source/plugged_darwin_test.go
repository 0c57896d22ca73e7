//go:build darwin

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
	"github.com/charlie0129/battview/pkg/smc"
)

func TestAddSMCExtras(t *testing.T) {
	tests := []struct {
		name   string
		values map[string][]byte
		extras notify.Extras
		want   notify.Extras
	}{
		{
			name:   "plugged in, capacity from OS",
			values: map[string][]byte{smc.ACPowerKey: {0x01}, smc.BatteryChargeKey: {80}},
			extras: notify.Extras{notify.ExtraLevel: 4000, notify.ExtraScale: 5000},
			want:   notify.Extras{notify.ExtraLevel: 4000, notify.ExtraScale: 5000, notify.ExtraPlugged: battery.PluggedAC},
		},
		{
			name:   "on battery, capacity from SMC",
			values: map[string][]byte{smc.ACPowerKey: {0x00}, smc.BatteryChargeKey: {42}},
			extras: notify.Extras{},
			want:   notify.Extras{notify.ExtraLevel: 42, notify.ExtraScale: 100, notify.ExtraPlugged: battery.PluggedNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, addSMCExtras(smc.NewMock(tt.values), tt.extras))
			assert.Equal(t, tt.want, tt.extras)
		})
	}
}
