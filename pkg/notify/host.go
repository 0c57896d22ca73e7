package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAckTimeout is how long the Host waits for a receiver to finish
	// a notification before it moves on to the next one.
	DefaultAckTimeout = 10 * time.Second

	queueSize = 16
)

// Host delivers notifications to registered receivers. The last
// notification of every action is sticky: a receiver registering late gets
// it replayed immediately instead of waiting for the next change.
type Host struct {
	mu         sync.RWMutex
	regs       map[*Registration]struct{}
	sticky     map[string]Notification
	ackTimeout time.Duration
	closed     bool
}

// Registration is the handle returned by Register. It is needed to
// unregister the receiver again.
type Registration struct {
	action   string
	receiver Receiver
	queue    chan Notification
	stopCh   chan struct{}
	stopOnce sync.Once
	// doneCh is closed once the delivery goroutine has returned.
	doneCh chan struct{}
}

// NewHost returns a Host. A non-positive ackTimeout means DefaultAckTimeout.
func NewHost(ackTimeout time.Duration) *Host {
	if ackTimeout <= 0 {
		ackTimeout = DefaultAckTimeout
	}
	return &Host{
		regs:       make(map[*Registration]struct{}),
		sticky:     make(map[string]Notification),
		ackTimeout: ackTimeout,
	}
}

// Register subscribes r to notifications of the given action. If a sticky
// notification exists for the action, it is returned and also queued for
// delivery to r.
func (h *Host) Register(action string, r Receiver) (*Registration, Notification, bool) {
	reg := &Registration{
		action:   action,
		receiver: r,
		queue:    make(chan Notification, queueSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		reg.stop()
		close(reg.doneCh)
		return reg, Notification{}, false
	}
	n, ok := h.sticky[action]
	if ok {
		reg.queue <- clone(n)
	}
	h.regs[reg] = struct{}{}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"action": action,
		"sticky": ok,
	}).Debug("receiver registered")

	go reg.deliver(h.ackTimeout)

	return reg, clone(n), ok
}

// Unregister removes a registration. When it returns, the receiver is not
// inside OnNotification and will not be called again. Work the receiver
// handed off and has not finished yet is not waited for. It is safe to call
// with nil or with a registration that is already gone, but not from within
// OnNotification of the same registration.
func (h *Host) Unregister(reg *Registration) {
	if reg == nil {
		return
	}

	h.mu.Lock()
	_, ok := h.regs[reg]
	if ok {
		delete(h.regs, reg)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	reg.stop()
	<-reg.doneCh

	logrus.WithField("action", reg.action).Debug("receiver unregistered")
}

// Publish records n as the sticky notification of its action and queues it
// for every receiver registered for that action. It never blocks: if a
// receiver falls behind, its oldest queued notification is dropped.
func (h *Host) Publish(n Notification) {
	if h == nil {
		return
	}
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	n.Extras = n.Extras.Clone()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.sticky[n.Action] = n

	for reg := range h.regs {
		if reg.action != n.Action {
			continue
		}
		select {
		case reg.queue <- clone(n):
			continue
		default:
		}
		// Drop the oldest one, the newer state supersedes it anyway.
		select {
		case <-reg.queue:
		default:
		}
		select {
		case reg.queue <- clone(n):
		default:
		}
		logrus.WithField("action", n.Action).Warn("receiver is slow, dropped a queued notification")
	}
}

// Sticky returns the last notification published for action.
func (h *Host) Sticky(action string) (Notification, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n, ok := h.sticky[action]
	return clone(n), ok
}

// Registrations returns the number of receivers registered for action.
func (h *Host) Registrations(action string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for reg := range h.regs {
		if reg.action == action {
			count++
		}
	}
	return count
}

// Close unregisters every receiver and waits for their delivery goroutines
// like Unregister does. Later calls to Publish and Register have no effect.
func (h *Host) Close() {
	h.mu.Lock()
	regs := h.regs
	h.regs = make(map[*Registration]struct{})
	h.closed = true
	h.mu.Unlock()

	for reg := range regs {
		reg.stop()
	}
	for reg := range regs {
		<-reg.doneCh
	}
}

func (reg *Registration) stop() {
	reg.stopOnce.Do(func() {
		close(reg.stopCh)
	})
}

func (reg *Registration) stopped() bool {
	select {
	case <-reg.stopCh:
		return true
	default:
		return false
	}
}

// deliver hands queued notifications to the receiver one at a time.
func (reg *Registration) deliver(ackTimeout time.Duration) {
	defer close(reg.doneCh)

	for {
		select {
		case <-reg.stopCh:
			return
		case n := <-reg.queue:
			if reg.stopped() {
				return
			}

			result := NewPendingResult()
			reg.receiver.OnNotification(n, result)
			reg.await(n, result, ackTimeout)
		}
	}
}

func (reg *Registration) await(n Notification, result *PendingResult, ackTimeout time.Duration) {
	t := time.NewTimer(ackTimeout)
	defer t.Stop()

	select {
	case <-result.Done():
	case <-reg.stopCh:
	case <-t.C:
		logrus.WithFields(logrus.Fields{
			"action":  n.Action,
			"timeout": ackTimeout,
		}).Warn("receiver did not finish the notification in time, moving on")
	}
}

func clone(n Notification) Notification {
	n.Extras = n.Extras.Clone()
	return n
}
