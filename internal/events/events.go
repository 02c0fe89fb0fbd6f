package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
)

// TypeExerciseSolved is emitted once when a learner completes every step of an exercise.
const TypeExerciseSolved = "exercise.solved"

// Event is a typed notification with a JSON payload. Emitters and handlers
// share only this envelope, not each other's packages.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type selects the payload schema
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ExerciseSolved is the payload of TypeExerciseSolved.
type ExerciseSolved struct {
	SessionID      uuid.UUID        `json:"session_id"`
	PlayerName     string           `json:"player_name"`
	Operation      domain.Operation `json:"operation"`
	OperandA       int              `json:"operand_a"`
	OperandB       int              `json:"operand_b"`
	Steps          int              `json:"steps"`
	Mistakes       int              `json:"mistakes"`
	Duration       time.Duration    `json:"duration"`
	HomeworkItemID *uuid.UUID       `json:"homework_item_id,omitempty"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Handlers ignore event types they do not know.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
