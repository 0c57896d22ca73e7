//go:build darwin

package smc

// SMC keys read on Intel Macs. Not verified on real hardware yet.
const (
	ACPowerKey       = "AC-W"
	BatteryChargeKey = "BBIF"
)
