package display

import (
	"fmt"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/config"
)

// Formatter turns a battery.Status into display text.
type Formatter struct {
	Labels config.Labels
}

// NewFormatter returns a Formatter using the given labels.
func NewFormatter(labels config.Labels) Formatter {
	return Formatter{Labels: labels}
}

// Percentage returns e.g. "50.0%", or the not-available label.
func (f Formatter) Percentage(s battery.Status) string {
	p, ok := s.Percentage()
	if !ok {
		return f.Labels.NotAvailable
	}
	return fmt.Sprintf("%.1f%%", p)
}

// Source returns the charging source label.
func (f Formatter) Source(s battery.Status) string {
	if !s.HasSource() {
		return f.Labels.NotAvailable
	}

	switch s.Source {
	case battery.SourceNone:
		return f.Labels.NoPowerSource
	case battery.SourceAC:
		return f.Labels.PowerAdapter
	case battery.SourceUSB:
		return f.Labels.USB
	case battery.SourceWireless:
		return f.Labels.Wireless
	default:
		return f.Labels.NotAvailable
	}
}

// State returns the charging status label.
func (f Formatter) State(s battery.Status) string {
	if !s.HasState() {
		return f.Labels.NotAvailable
	}

	switch s.State {
	case battery.StateCharging:
		return f.Labels.Charging
	case battery.StateDischarging:
		return f.Labels.Discharging
	case battery.StateFull:
		return f.Labels.Full
	case battery.StateNotCharging:
		return f.Labels.NotCharging
	default:
		return f.Labels.Unknown
	}
}
