package battery

import (
	"github.com/charlie0129/battview/pkg/notify"
)

// Missing is the value of a raw field that was not present in the payload.
const Missing = -1

// Status is the decoded form of one battery.changed notification. A new
// Status is built for every notification and is never updated afterwards.
type Status struct {
	LevelRaw   int `json:"levelRaw"`
	ScaleRaw   int `json:"scaleRaw"`
	PluggedRaw int `json:"pluggedRaw"`
	StatusRaw  int `json:"statusRaw"`

	Source ChargingSource `json:"source"`
	State  ChargingState  `json:"state"`
}

// Decode builds a Status from the extras of a notification. It never fails:
// absent fields become Missing and unknown codes map to the unknown enums.
func Decode(extras notify.Extras) Status {
	plugged := extras.Int(notify.ExtraPlugged, Missing)
	status := extras.Int(notify.ExtraStatus, Missing)

	return Status{
		LevelRaw:   extras.Int(notify.ExtraLevel, Missing),
		ScaleRaw:   extras.Int(notify.ExtraScale, Missing),
		PluggedRaw: plugged,
		StatusRaw:  status,
		Source:     ParseSource(plugged),
		State:      ParseState(status),
	}
}

// Percentage returns level/scale*100. The second value is false when the
// percentage cannot be computed: a raw value is missing or negative, or
// the scale is zero.
func (s Status) Percentage() (float64, bool) {
	if s.LevelRaw < 0 || s.ScaleRaw <= 0 {
		return 0, false
	}
	return float64(s.LevelRaw) / float64(s.ScaleRaw) * 100, true
}

// HasSource reports whether the plugged code is one the host documents.
func (s Status) HasSource() bool {
	switch s.PluggedRaw {
	case PluggedNone, PluggedAC, PluggedUSB, PluggedWireless:
		return true
	}
	return false
}

// HasState reports whether the status code is one the host documents. The
// host's own "unknown" code counts as documented.
func (s Status) HasState() bool {
	return s.StatusRaw >= StatusUnknown && s.StatusRaw <= StatusFull
}

// Extras converts the raw fields back into notification extras, leaving out
// the missing ones.
func (s Status) Extras() notify.Extras {
	e := notify.Extras{}
	for k, v := range map[string]int{
		notify.ExtraLevel:   s.LevelRaw,
		notify.ExtraScale:   s.ScaleRaw,
		notify.ExtraPlugged: s.PluggedRaw,
		notify.ExtraStatus:  s.StatusRaw,
	} {
		if v != Missing {
			e[k] = v
		}
	}
	return e
}
