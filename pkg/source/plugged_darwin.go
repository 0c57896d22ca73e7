//go:build darwin

package source

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battview/pkg/battery"
	"github.com/charlie0129/battview/pkg/notify"
	"github.com/charlie0129/battview/pkg/smc"
)

var (
	smcOnce sync.Once
	smcConn *smc.AppleSMC
	smcErr  error
)

func openSMC() (*smc.AppleSMC, error) {
	smcOnce.Do(func() {
		c := smc.New()
		if err := c.Open(); err != nil {
			smcErr = err
			return
		}
		smcConn = c
	})
	return smcConn, smcErr
}

// addPlatformExtras reads the AC flag from the Apple SMC, and the charge
// when the OS battery API did not report a capacity. The SMC cannot tell a
// USB-C charger from a power adapter, so plugged in always means AC.
func addPlatformExtras(extras notify.Extras) error {
	c, err := openSMC()
	if err != nil {
		return err
	}
	return addSMCExtras(c, extras)
}

func addSMCExtras(c *smc.AppleSMC, extras notify.Extras) error {
	in, err := c.IsPluggedIn()
	if err != nil {
		return err
	}
	if in {
		extras[notify.ExtraPlugged] = battery.PluggedAC
	} else {
		extras[notify.ExtraPlugged] = battery.PluggedNone
	}

	if _, ok := extras[notify.ExtraScale]; !ok {
		charge, err := c.GetBatteryCharge()
		if err != nil {
			logrus.Debugf("failed to read battery charge from SMC: %v", err)
			return nil
		}
		extras[notify.ExtraLevel] = charge
		extras[notify.ExtraScale] = 100
	}

	return nil
}
