package source

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/notify"
)

// Source produces battery telemetry in the form of notification extras.
type Source interface {
	Name() string
	// Run calls publish with the current telemetry and again whenever it
	// may have changed, until ctx is done.
	Run(ctx context.Context, publish func(notify.Extras)) error
}

// Publisher is the publishing side of notify.Host.
type Publisher interface {
	Publish(n notify.Notification)
}

// Pump runs src and publishes battery.changed notifications to host.
// Consecutive identical payloads are only published once.
func Pump(ctx context.Context, src Source, host Publisher) error {
	log := logrus.WithField("source", src.Name())

	var (
		last      notify.Extras
		published bool
	)
	publish := func(extras notify.Extras) {
		if published && last.Equal(extras) {
			log.WithField("extras", extras).Trace("battery telemetry unchanged")
			return
		}
		last = extras.Clone()
		published = true

		log.WithField("extras", extras).Debug("battery telemetry changed")
		host.Publish(notify.Notification{
			Action: notify.ActionBatteryChanged,
			Extras: extras,
			Time:   time.Now(),
		})
	}

	log.Info("battery source started")
	err := src.Run(ctx, publish)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("battery source %s failed: %w", src.Name(), err)
	}

	log.Info("battery source stopped")
	return nil
}

// ReadFunc reads the current battery telemetry once.
type ReadFunc func() (notify.Extras, error)

// Poller is a Source that reads telemetry periodically. The first read
// happens immediately, so there is a value before the first interval ends.
type Poller struct {
	name     string
	interval time.Duration
	read     ReadFunc
}

// NewPoller returns a Poller calling read every interval.
func NewPoller(name string, interval time.Duration, read ReadFunc) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		read:     read,
	}
}

func (p *Poller) Name() string {
	return p.name
}

// Run polls until ctx is done. Read errors are logged and do not stop the
// poller.
func (p *Poller) Run(ctx context.Context, publish func(notify.Extras)) error {
	poll := func() {
		extras, err := p.read()
		if err != nil {
			logrus.WithField("source", p.name).Errorf("failed to read battery telemetry: %v", err)
			return
		}
		publish(extras)
	}

	poll()

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			poll()
		}
	}
}
