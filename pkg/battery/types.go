package battery

// Raw plugged-source codes reported by the host.
const (
	PluggedNone     = 0
	PluggedAC       = 1
	PluggedUSB      = 2
	PluggedWireless = 4
)

// Raw charging-status codes reported by the host.
const (
	StatusUnknown     = 1
	StatusCharging    = 2
	StatusDischarging = 3
	StatusNotCharging = 4
	StatusFull        = 5
)

// ChargingSource is where the battery gets its power from.
type ChargingSource int

const (
	// SourceUnknown is used for any code the host does not document.
	SourceUnknown ChargingSource = iota
	// SourceNone means no external power source is connected.
	SourceNone
	// SourceAC is a power adapter.
	SourceAC
	// SourceUSB is a USB port.
	SourceUSB
	// SourceWireless is a wireless charger.
	SourceWireless
)

func (s ChargingSource) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceAC:
		return "ac"
	case SourceUSB:
		return "usb"
	case SourceWireless:
		return "wireless"
	default:
		return "unknown"
	}
}

// ChargingState represents the charging state of the battery.
type ChargingState int

const (
	// StateUnknown is used for the host's own "unknown" code and for any
	// code the host does not document.
	StateUnknown ChargingState = iota
	// StateCharging indicates the battery is charging.
	StateCharging
	// StateDischarging indicates the battery is discharging.
	StateDischarging
	// StateFull indicates the battery is full.
	StateFull
	// StateNotCharging indicates external power is present but the battery is not charging.
	StateNotCharging
)

func (s ChargingState) String() string {
	switch s {
	case StateCharging:
		return "charging"
	case StateDischarging:
		return "discharging"
	case StateFull:
		return "full"
	case StateNotCharging:
		return "not charging"
	default:
		return "unknown"
	}
}

// ParseSource maps a raw plugged code to a ChargingSource.
func ParseSource(code int) ChargingSource {
	switch code {
	case PluggedNone:
		return SourceNone
	case PluggedAC:
		return SourceAC
	case PluggedUSB:
		return SourceUSB
	case PluggedWireless:
		return SourceWireless
	default:
		return SourceUnknown
	}
}

// ParseState maps a raw status code to a ChargingState.
func ParseState(code int) ChargingState {
	switch code {
	case StatusCharging:
		return StateCharging
	case StatusDischarging:
		return StateDischarging
	case StatusFull:
		return StateFull
	case StatusNotCharging:
		return StateNotCharging
	default:
		return StateUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ChargingSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s ChargingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
