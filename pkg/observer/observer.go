package observer

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
)

// Registrar is the subscription side of notify.Host.
type Registrar interface {
	Register(action string, r notify.Receiver) (*notify.Registration, notify.Notification, bool)
	Unregister(reg *notify.Registration)
}

// StatusHandler receives every decoded battery status.
type StatusHandler interface {
	HandleStatus(s battery.Status)
}

// StatusHandlerFunc adapts an ordinary function to a StatusHandler.
type StatusHandlerFunc func(s battery.Status)

// HandleStatus calls f(s).
func (f StatusHandlerFunc) HandleStatus(s battery.Status) {
	f(s)
}

// Option configures an Observer.
type Option func(o *Observer)

// WithDropStale discards results of notifications that finish decoding
// after Stop has been called, instead of rendering them.
func WithDropStale(drop bool) Option {
	return func(o *Observer) {
		o.dropStale = drop
	}
}

// Observer bridges battery.changed notifications to a StatusHandler. It is
// only subscribed between Start and Stop, which are meant to follow the
// foreground lifecycle of the application.
type Observer struct {
	host      Registrar
	handler   StatusHandler
	dropStale bool

	mu     sync.Mutex
	reg    *notify.Registration
	active atomic.Bool

	// inflight tracks the worker goroutines spawned by OnNotification.
	inflight sync.WaitGroup
}

var _ notify.Receiver = &Observer{}

// New returns an Observer that is not subscribed yet.
func New(host Registrar, handler StatusHandler, opts ...Option) *Observer {
	o := &Observer{
		host:    host,
		handler: handler,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start subscribes to battery.changed. The host replays the current state
// right away. Calling Start again while subscribed does nothing.
func (o *Observer) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.reg != nil {
		logrus.Trace("observer already started")
		return
	}

	o.active.Store(true)
	reg, _, sticky := o.host.Register(notify.ActionBatteryChanged, o)
	o.reg = reg

	logrus.WithField("sticky", sticky).Debug("battery observer started")
}

// Stop unsubscribes. It is a no-op when the observer is not started.
// Workers already running are allowed to finish, but no new ones are
// spawned once Stop returns, so a following Wait covers all of them.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.reg == nil {
		logrus.Trace("observer not started, nothing to stop")
		return
	}

	o.active.Store(false)
	o.host.Unregister(o.reg)
	o.reg = nil

	logrus.Debug("battery observer stopped")
}

// Registered reports whether the observer is currently subscribed.
func (o *Observer) Registered() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.reg != nil
}

// Wait blocks until all workers spawned so far have finished.
func (o *Observer) Wait() {
	o.inflight.Wait()
}

// OnNotification implements notify.Receiver. Decoding and rendering run on
// a separate goroutine, and result is finished once that goroutine exits,
// whatever the outcome.
func (o *Observer) OnNotification(n notify.Notification, result *notify.PendingResult) {
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		defer result.Finish()
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"action": n.Action,
					"panic":  r,
				}).Error("failed to handle battery notification")
			}
		}()

		o.handle(n)
	}()
}

func (o *Observer) handle(n notify.Notification) {
	if n.Action != notify.ActionBatteryChanged {
		logrus.WithField("action", n.Action).Debug("ignoring unrelated notification")
		return
	}

	status := battery.Decode(n.Extras)

	if o.dropStale && !o.active.Load() {
		logrus.WithField("time", n.Time).Debug("observer stopped, dropping stale battery status")
		return
	}

	o.handler.HandleStatus(status)
}
