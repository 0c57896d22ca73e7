//go:build darwin

package smc

// SMC keys read on Apple Silicon.
const (
	ACPowerKey       = "AC-W"
	BatteryChargeKey = "BUIC"
)
