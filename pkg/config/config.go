package config

import (
	"time"
)

type Config interface {
	// Labels returns the static strings shown on the display.
	Labels() Labels
	// Source is the name of the battery telemetry source, e.g. "auto".
	Source() string
	PollInterval() time.Duration
	AckTimeout() time.Duration
	DropStaleResults() bool

	// Load reads the configuration from the source.
	Load() error
}

// Labels are the display strings for every field value.
type Labels struct {
	NotAvailable  string `json:"notAvailable"`
	NoPowerSource string `json:"noPowerSource"`
	PowerAdapter  string `json:"powerAdapter"`
	USB           string `json:"usb"`
	Wireless      string `json:"wireless"`
	Charging      string `json:"charging"`
	Discharging   string `json:"discharging"`
	Full          string `json:"full"`
	NotCharging   string `json:"notCharging"`
	Unknown       string `json:"unknown"`
}

// DefaultLabels returns the built-in display strings.
func DefaultLabels() Labels {
	return Labels{
		NotAvailable:  "n/a",
		NoPowerSource: "no external power source",
		PowerAdapter:  "power adapter",
		USB:           "USB battery",
		Wireless:      "wireless battery",
		Charging:      "charging",
		Discharging:   "discharging",
		Full:          "full",
		NotCharging:   "not charging",
		Unknown:       "unknown",
	}
}
