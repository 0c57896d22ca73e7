package notify

import (
	"time"
)

// ActionBatteryChanged is the action of the sticky notification carrying
// battery telemetry.
const ActionBatteryChanged = "battery.changed"

// Extra keys carried by a battery.changed notification.
const (
	ExtraLevel   = "level"
	ExtraScale   = "scale"
	ExtraPlugged = "plugged"
	ExtraStatus  = "status"
)

// Extras holds the integer fields of a notification.
type Extras map[string]int

// Int returns the value stored under key, or def if it is absent.
func (e Extras) Int(key string, def int) int {
	if e == nil {
		return def
	}
	v, ok := e[key]
	if !ok {
		return def
	}
	return v
}

// Equal reports whether both extras hold the same keys and values.
func (e Extras) Equal(other Extras) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a copy of e. Receivers get their own copy so they can
// never mutate the sticky value kept by the Host.
func (e Extras) Clone() Extras {
	if e == nil {
		return nil
	}
	c := make(Extras, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// Notification is a single event delivered by the Host.
type Notification struct {
	Action string    `json:"action"`
	Extras Extras    `json:"extras"`
	Time   time.Time `json:"time"`
}

// Receiver handles notifications delivered by the Host.
//
// OnNotification is called on the delivery goroutine of the registration and
// must return quickly. Work that takes longer must be moved elsewhere, and
// result.Finish must be called once it completes. The Host will not deliver
// the next notification to the same receiver until then (or until the
// acknowledgement timeout expires).
type Receiver interface {
	OnNotification(n Notification, result *PendingResult)
}

// ReceiverFunc adapts an ordinary function to a Receiver.
type ReceiverFunc func(n Notification, result *PendingResult)

// OnNotification calls f(n, result).
func (f ReceiverFunc) OnNotification(n Notification, result *PendingResult) {
	f(n, result)
}
