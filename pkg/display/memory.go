package display

import (
	"sync"
)

// Fields is a snapshot of the three display fields.
type Fields struct {
	Percentage     string `json:"percentage"`
	ChargingSource string `json:"chargingSource"`
	ChargingStatus string `json:"chargingStatus"`
}

// Memory is a Sink that keeps the fields in memory.
type Memory struct {
	mu      sync.Mutex
	fields  Fields
	renders int
	updated chan struct{}
}

var _ Sink = &Memory{}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{
		updated: make(chan struct{}, 1),
	}
}

func (m *Memory) SetPercentage(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields.Percentage = text
}

func (m *Memory) SetChargingSource(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields.ChargingSource = text
}

func (m *Memory) SetChargingStatus(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields.ChargingStatus = text
}

// Flush counts a complete render and wakes up anyone waiting on Updated.
func (m *Memory) Flush() {
	m.mu.Lock()
	m.renders++
	m.mu.Unlock()

	select {
	case m.updated <- struct{}{}:
	default:
	}
}

// Updated receives a value after each complete render. Renders happening
// while nobody is receiving are coalesced.
func (m *Memory) Updated() <-chan struct{} {
	return m.updated
}

// Fields returns the current fields.
func (m *Memory) Fields() Fields {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields
}

// Renders returns how many complete renders happened.
func (m *Memory) Renders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renders
}
