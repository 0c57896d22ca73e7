//go:build darwin

package smc

// GetBatteryCharge returns the charge the SMC reports, in percent.
func (c *AppleSMC) GetBatteryCharge() (int, error) {
	b, err := c.readByte(BatteryChargeKey)
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

// IsPluggedIn reports whether external power is connected. A positive
// AC-W value means some adapter is delivering power.
func (c *AppleSMC) IsPluggedIn() (bool, error) {
	b, err := c.readByte(ACPowerKey)
	if err != nil {
		return false, err
	}
	return int8(b) > 0, nil
}
