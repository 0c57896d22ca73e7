package gui

import (
	"fmt"
	"sync"

	"github.com/charlie0129/battview/pkg/config"
	"github.com/charlie0129/battview/pkg/display"
)

// titled is the part of *systray.MenuItem the tray writes to.
type titled interface {
	SetTitle(title string)
}

// Tray is a display.Sink backed by three read-only menu items. The menu bar
// title mirrors the percentage.
type Tray struct {
	mu     sync.Mutex
	labels config.Labels
	fields display.Fields

	setTitle   func(title string)
	percentage titled
	source     titled
	status     titled
}

var _ display.Sink = &Tray{}

func newTray(labels config.Labels, setTitle func(string), percentage, source, status titled) *Tray {
	return &Tray{
		labels:     labels,
		setTitle:   setTitle,
		percentage: percentage,
		source:     source,
		status:     status,
	}
}

func (t *Tray) SetPercentage(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.Percentage = text
	t.percentage.SetTitle("Battery: " + text)
}

func (t *Tray) SetChargingSource(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.ChargingSource = text
	t.source.SetTitle("Source: " + text)
}

func (t *Tray) SetChargingStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.ChargingStatus = text
	t.status.SetTitle("Status: " + text)
}

// Flush updates the menu bar title.
func (t *Tray) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setTitle(menubarTitle(t.fields, t.labels))
}

func menubarTitle(f display.Fields, labels config.Labels) string {
	icon := "🔋"
	switch f.ChargingStatus {
	case labels.Charging:
		icon = "⚡️"
	case labels.Full:
		icon = "🔌"
	}
	return fmt.Sprintf("%s %s", icon, f.Percentage)
}
