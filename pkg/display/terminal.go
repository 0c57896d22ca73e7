package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/charlie0129/battview/pkg/config"
)

// Terminal is a Sink printing one line per status. On a TTY the line is
// redrawn in place and colored.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	tty    bool
	fields Fields
	colors map[string]*color.Color
}

var _ Sink = &Terminal{}

// NewTerminal returns a Terminal writing to w. Colors and in-place redraws
// are only used when w is a terminal.
func NewTerminal(w io.Writer, labels config.Labels) *Terminal {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	colors := map[string]*color.Color{
		labels.Charging:     color.New(color.Bold, color.FgGreen),
		labels.Full:         color.New(color.Bold, color.FgGreen),
		labels.Discharging:  color.New(color.Bold, color.FgRed),
		labels.NotCharging:  color.New(color.Bold, color.FgYellow),
		labels.NotAvailable: color.New(color.Faint),
	}
	for _, c := range colors {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return &Terminal{
		w:      w,
		tty:    tty,
		colors: colors,
	}
}

func (t *Terminal) SetPercentage(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.Percentage = text
}

func (t *Terminal) SetChargingSource(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.ChargingSource = text
}

func (t *Terminal) SetChargingStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields.ChargingStatus = text
}

// Flush prints the current fields.
func (t *Terminal) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("Battery: %s | Source: %s | Status: %s",
		t.paint(t.fields.Percentage, color.New(color.Bold)),
		t.paint(t.fields.ChargingSource, nil),
		t.paint(t.fields.ChargingStatus, nil),
	)

	if t.tty {
		// Carriage return and clear the line, so the status is redrawn in place.
		_, _ = fmt.Fprint(t.w, "\r\033[K"+line)
		return
	}
	_, _ = fmt.Fprintln(t.w, line)
}

func (t *Terminal) paint(text string, fallback *color.Color) string {
	if !t.tty {
		return text
	}
	if c, ok := t.colors[text]; ok {
		return c.Sprint(text)
	}
	if fallback != nil {
		fallback.EnableColor()
		return fallback.Sprint(text)
	}
	return text
}
