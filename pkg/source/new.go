package source

import (
	"time"
)

// New returns the Source with the given name. "auto" (or an empty name)
// picks the best one for the platform.
func New(name string, interval time.Duration) (Source, error) {
	switch name {
	case "", "auto":
		return newAuto(interval)
	case "battery":
		return NewBattery(interval), nil
	default:
		return newPlatform(name, interval)
	}
}
