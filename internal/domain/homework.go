package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxHomeworkItems caps the number of exercises in one assignment.
const MaxHomeworkItems = 50

// Common validation errors for HomeworkAssignment
var (
	ErrEmptyHomeworkID    = errors.New("homework ID cannot be empty")
	ErrEmptyHomeworkTitle = errors.New("homework title cannot be empty")
	ErrNoHomeworkItems    = errors.New("homework must contain at least one exercise")
	ErrTooManyItems       = fmt.Errorf("homework cannot contain more than %d exercises", MaxHomeworkItems)
	ErrInvalidHomeworkDue = errors.New("homework due date must be after creation")
)

// HomeworkItem is one assigned exercise with fixed operands.
type HomeworkItem struct {
	ID           uuid.UUID  `json:"id"`
	AssignmentID uuid.UUID  `json:"assignment_id"`
	Position     int        `json:"position"`
	Operation    Operation  `json:"operation"`
	OperandA     int        `json:"operand_a"`
	OperandB     int        `json:"operand_b"`
	ResultID     *uuid.UUID `json:"result_id,omitempty"`
}

// Done reports whether the item has a recorded result.
func (i HomeworkItem) Done() bool {
	return i.ResultID != nil
}

// HomeworkAssignment is a list of exercises assigned to one player. The
// report is protected by an access code known to the adult who set it.
type HomeworkAssignment struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	PlayerName     string         `json:"player_name"`
	AccessCodeHash string         `json:"-"`
	Items          []HomeworkItem `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
	DueAt          *time.Time     `json:"due_at,omitempty"`
}

// NewHomeworkAssignment creates a validated assignment. Items receive IDs
// and positions in the order given.
func NewHomeworkAssignment(
	title, player, accessCodeHash string,
	items []HomeworkItem,
	dueAt *time.Time,
) (*HomeworkAssignment, error) {
	h := &HomeworkAssignment{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(title),
		PlayerName:     strings.TrimSpace(player),
		AccessCodeHash: accessCodeHash,
		CreatedAt:      time.Now().UTC(),
		DueAt:          dueAt,
	}
	for i, item := range items {
		item.ID = uuid.New()
		item.AssignmentID = h.ID
		item.Position = i
		item.ResultID = nil
		h.Items = append(h.Items, item)
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Validate checks if the HomeworkAssignment has valid data.
func (h *HomeworkAssignment) Validate() error {
	if h.ID == uuid.Nil {
		return ErrEmptyHomeworkID
	}
	if h.Title == "" {
		return ErrEmptyHomeworkTitle
	}
	if h.PlayerName == "" {
		return ErrEmptyPlayerName
	}
	if len(h.Items) == 0 {
		return ErrNoHomeworkItems
	}
	if len(h.Items) > MaxHomeworkItems {
		return ErrTooManyItems
	}
	for _, item := range h.Items {
		if !item.Operation.Valid() {
			return fmt.Errorf("item %d: %w", item.Position, ErrInvalidOperation)
		}
	}
	if h.DueAt != nil && !h.DueAt.After(h.CreatedAt) {
		return ErrInvalidHomeworkDue
	}
	return nil
}

// Item returns the item with the given ID.
func (h *HomeworkAssignment) Item(id uuid.UUID) (HomeworkItem, bool) {
	for _, item := range h.Items {
		if item.ID == id {
			return item, true
		}
	}
	return HomeworkItem{}, false
}

// Progress returns completed and total item counts.
func (h *HomeworkAssignment) Progress() (done, total int) {
	for _, item := range h.Items {
		if item.Done() {
			done++
		}
	}
	return done, len(h.Items)
}
