package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/service"
)

// ExerciseHandler handles exercise session requests
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler
func NewExerciseHandler(exerciseService service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	if exerciseService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("exerciseService cannot be nil for ExerciseHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseHandler{
		exerciseService: exerciseService,
		logger:          logger.With(slog.String("component", "exercise_handler")),
	}
}

// StartExercise handles POST /api/exercises
func (h *ExerciseHandler) StartExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, ok := handlePlayer(w, r, log)
	if !ok {
		return
	}

	var req StartExerciseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	params := service.StartExerciseParams{
		PlayerName:     player,
		OperandA:       req.OperandA,
		OperandB:       req.OperandB,
		HomeworkID:     req.HomeworkID,
		HomeworkItemID: req.HomeworkItemID,
	}
	if req.HomeworkID == nil {
		op, err := domain.ParseOperation(req.Operation)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		params.Operation = op
	}
	if req.Difficulty != "" {
		d, err := domain.ParseDifficulty(req.Difficulty)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		params.Difficulty = d
	}

	view, err := h.exerciseService.Start(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start exercise")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetExercise handles GET /api/exercises/{id}
func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	view, err := h.exerciseService.Get(r.Context(), player, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get exercise")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitInput handles POST /api/exercises/{id}/input
//
// A wrong digit is a 200 with correct=false. Guard rejections return the
// failure kind in the error body.
func (h *ExerciseHandler) SubmitInput(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req InputRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outcome, err := h.exerciseService.Enter(r.Context(), player, id, req.Value)
	if err != nil {
		if kind := guard.KindOf(err); kind != guard.KindNone {
			log.Debug("input rejected",
				slog.String("session_id", id.String()),
				slog.String("kind", string(kind)))
		}
		HandleAPIError(w, r, err, "Failed to submit input")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}

// PerformAction handles POST /api/exercises/{id}/action
func (h *ExerciseHandler) PerformAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	outcome, err := h.exerciseService.Act(r.Context(), player, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to perform action")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}

// ResetExercise handles POST /api/exercises/{id}/reset
func (h *ExerciseHandler) ResetExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	view, err := h.exerciseService.Reset(r.Context(), player, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset exercise")
		return
	}

	log.Debug("exercise reset", slog.String("session_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
