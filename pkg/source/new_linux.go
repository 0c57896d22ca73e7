//go:build linux

package source

import (
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func newAuto(interval time.Duration) (Source, error) {
	u, err := NewUPower()
	if err == nil {
		return u, nil
	}
	logrus.Debugf("upower not available, falling back to sysfs: %v", err)

	return NewSysfs(DefaultSysMountPoint, interval)
}

func newPlatform(name string, interval time.Duration) (Source, error) {
	switch name {
	case "sysfs":
		return NewSysfs(DefaultSysMountPoint, interval)
	case "upower":
		return NewUPower()
	}
	return nil, pkgerrors.Errorf("unknown battery source %q", name)
}
