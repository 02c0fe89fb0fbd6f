package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/service"
)

// TokenRequest defines the payload for the player token endpoint.
type TokenRequest struct {
	PlayerName string `json:"player_name" validate:"required,max=64"`
}

// TokenResponse defines the successful response for the token endpoint.
type TokenResponse struct {
	PlayerName string `json:"player_name"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// StartExerciseRequest defines the payload for starting an exercise. Either
// an operation or a homework reference is required; operands are generated
// from the difficulty when both are omitted.
type StartExerciseRequest struct {
	Operation      string     `json:"operation"        validate:"required_without=HomeworkID"`
	Difficulty     string     `json:"difficulty"       validate:"omitempty,oneof=easy medium hard"`
	OperandA       *int       `json:"operand_a"        validate:"omitempty,gte=0"`
	OperandB       *int       `json:"operand_b"        validate:"omitempty,gte=0"`
	HomeworkID     *uuid.UUID `json:"homework_id"      validate:"required_with=HomeworkItemID"`
	HomeworkItemID *uuid.UUID `json:"homework_item_id" validate:"required_with=HomeworkID"`
}

// InputRequest carries one typed digit. The value is checked by the input
// guard, not by struct validation, so that failures are classified.
type InputRequest struct {
	Value string `json:"value"`
}

// HomeworkItemRequest is one exercise of a new assignment.
type HomeworkItemRequest struct {
	Operation string `json:"operation" validate:"required,oneof=addition subtraction multiplication division"`
	OperandA  int    `json:"operand_a" validate:"gte=0"`
	OperandB  int    `json:"operand_b" validate:"gte=0"`
}

// CreateHomeworkRequest defines the payload for creating an assignment.
type CreateHomeworkRequest struct {
	Title      string                `json:"title"       validate:"required,max=120"`
	PlayerName string                `json:"player_name" validate:"required,max=64"`
	AccessCode string                `json:"access_code" validate:"required,min=4,max=72"`
	Items      []HomeworkItemRequest `json:"items"       validate:"required,min=1,max=50,dive"`
	DueAt      *time.Time            `json:"due_at"`
}

// HomeworkItemResponse is one assignment item as shown to the player.
type HomeworkItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	Position  int              `json:"position"`
	Operation domain.Operation `json:"operation"`
	OperandA  int              `json:"operand_a"`
	OperandB  int              `json:"operand_b"`
	Done      bool             `json:"done"`
}

// HomeworkResponse is an assignment with its progress.
type HomeworkResponse struct {
	ID         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	PlayerName string                 `json:"player_name"`
	Items      []HomeworkItemResponse `json:"items"`
	Completed  int                    `json:"completed"`
	Total      int                    `json:"total"`
	CreatedAt  time.Time              `json:"created_at"`
	DueAt      *time.Time             `json:"due_at,omitempty"`
}

// HomeworkReportResponse is the adult-facing progress report.
type HomeworkReportResponse struct {
	Homework      HomeworkResponse  `json:"homework"`
	TotalScore    int               `json:"total_score"`
	TotalMistakes int               `json:"total_mistakes"`
	TimeSpentMS   int64             `json:"time_spent_ms"`
	Results       []*ResultResponse `json:"results"`
}

// ResultResponse is one recorded exercise result.
type ResultResponse struct {
	ID             uuid.UUID        `json:"id"`
	PlayerName     string           `json:"player_name"`
	Operation      domain.Operation `json:"operation"`
	OperandA       int              `json:"operand_a"`
	OperandB       int              `json:"operand_b"`
	Steps          int              `json:"steps"`
	Mistakes       int              `json:"mistakes"`
	Score          int              `json:"score"`
	DurationMS     int64            `json:"duration_ms"`
	HomeworkItemID *uuid.UUID       `json:"homework_item_id,omitempty"`
	CompletedAt    time.Time        `json:"completed_at"`
}

// LeaderboardResponse wraps ranked entries.
type LeaderboardResponse struct {
	Operation domain.Operation          `json:"operation,omitempty"`
	Entries   []domain.LeaderboardEntry `json:"entries"`
}

// HistoryResponse wraps a player's recent results.
type HistoryResponse struct {
	PlayerName string            `json:"player_name"`
	Results    []*ResultResponse `json:"results"`
}

func homeworkToResponse(h *domain.HomeworkAssignment) HomeworkResponse {
	items := make([]HomeworkItemResponse, len(h.Items))
	for i, item := range h.Items {
		items[i] = HomeworkItemResponse{
			ID:        item.ID,
			Position:  item.Position,
			Operation: item.Operation,
			OperandA:  item.OperandA,
			OperandB:  item.OperandB,
			Done:      item.Done(),
		}
	}
	done, total := h.Progress()
	return HomeworkResponse{
		ID:         h.ID,
		Title:      h.Title,
		PlayerName: h.PlayerName,
		Items:      items,
		Completed:  done,
		Total:      total,
		CreatedAt:  h.CreatedAt,
		DueAt:      h.DueAt,
	}
}

func resultToResponse(r *domain.ExerciseResult) *ResultResponse {
	return &ResultResponse{
		ID:             r.ID,
		PlayerName:     r.PlayerName,
		Operation:      r.Operation,
		OperandA:       r.OperandA,
		OperandB:       r.OperandB,
		Steps:          r.Steps,
		Mistakes:       r.Mistakes,
		Score:          r.Score,
		DurationMS:     r.Duration.Milliseconds(),
		HomeworkItemID: r.HomeworkItemID,
		CompletedAt:    r.CompletedAt,
	}
}

func resultsToResponse(results []*domain.ExerciseResult) []*ResultResponse {
	out := make([]*ResultResponse, len(results))
	for i, r := range results {
		out[i] = resultToResponse(r)
	}
	return out
}

func reportToResponse(report *service.HomeworkReport) HomeworkReportResponse {
	return HomeworkReportResponse{
		Homework:      homeworkToResponse(report.Assignment),
		TotalScore:    report.TotalScore,
		TotalMistakes: report.TotalMistakes,
		TimeSpentMS:   report.TimeSpent.Milliseconds(),
		Results:       resultsToResponse(report.Results),
	}
}
