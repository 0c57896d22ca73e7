//go:build !darwin

package source

import (
	"errors"

	"github.com/charlie0129/battview/pkg/notify"
)

var errPlatformExtrasUnsupported = errors.New("no platform battery probe on this OS")

func addPlatformExtras(notify.Extras) error {
	return errPlatformExtrasUnsupported
}
