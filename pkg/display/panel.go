package display

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/config"
)

// Sink shows the three battery fields. Each setter is independent of the
// others.
type Sink interface {
	SetPercentage(text string)
	SetChargingSource(text string)
	SetChargingStatus(text string)
}

// Flusher is implemented by sinks that want to know when all three fields
// of one status have been written.
type Flusher interface {
	Flush()
}

// Panel renders decoded statuses to a Sink.
type Panel struct {
	sink      Sink
	formatter Formatter
}

// NewPanel returns a Panel writing to sink.
func NewPanel(sink Sink, labels config.Labels) *Panel {
	return &Panel{
		sink:      sink,
		formatter: NewFormatter(labels),
	}
}

// HandleStatus writes the percentage, charging source and charging status
// of s, logging one line per field. A field that fails to render does not
// keep the others from being updated.
func (p *Panel) HandleStatus(s battery.Status) {
	p.update("percentage", func() {
		text := p.formatter.Percentage(s)
		logrus.WithFields(logrus.Fields{
			"level": s.LevelRaw,
			"scale": s.ScaleRaw,
		}).Debugf("Battery percentage is %s", text)
		p.sink.SetPercentage(text)
	})

	p.update("chargingSource", func() {
		text := p.formatter.Source(s)
		logrus.WithField("plugged", s.PluggedRaw).Debugf("Battery is connected to %s", text)
		p.sink.SetChargingSource(text)
	})

	p.update("chargingStatus", func() {
		text := p.formatter.State(s)
		logrus.WithField("status", s.StatusRaw).Debugf("Battery is %s", text)
		p.sink.SetChargingStatus(text)
	})

	if f, ok := p.sink.(Flusher); ok {
		p.update("flush", f.Flush)
	}
}

func (p *Panel) update(field string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"field": field,
				"panic": r,
			}).Error("failed to update display field")
		}
	}()
	fn()
}
