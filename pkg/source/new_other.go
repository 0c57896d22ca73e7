//go:build !linux

package source

import (
	"time"

	pkgerrors "github.com/pkg/errors"
)

func newAuto(interval time.Duration) (Source, error) {
	return NewBattery(interval), nil
}

func newPlatform(name string, _ time.Duration) (Source, error) {
	switch name {
	case "sysfs", "upower":
		return nil, pkgerrors.Errorf("battery source %q is only available on linux", name)
	}
	return nil, pkgerrors.Errorf("unknown battery source %q", name)
}
