package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tally-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter and keeps every event it sees.
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.Event) error

	mu     sync.Mutex
	events []*events.Event
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements events.EventEmitter
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return nil
}

// Events returns a copy of the emitted events.
func (m *MockEventEmitter) Events() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.Event, len(m.events))
	copy(out, m.events)
	return out
}
