package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/service"
)

// AccessCodeHeader carries the homework access code for reports.
const AccessCodeHeader = "X-Access-Code"

// HomeworkHandler handles homework assignment requests
type HomeworkHandler struct {
	homeworkService service.HomeworkService
	logger          *slog.Logger
}

// NewHomeworkHandler creates a new HomeworkHandler
func NewHomeworkHandler(homeworkService service.HomeworkService, logger *slog.Logger) *HomeworkHandler {
	if homeworkService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("homeworkService cannot be nil for HomeworkHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeworkHandler{
		homeworkService: homeworkService,
		logger:          logger.With(slog.String("component", "homework_handler")),
	}
}

// CreateHomework handles POST /api/homework
func (h *HomeworkHandler) CreateHomework(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := handlePlayer(w, r, log); !ok {
		return
	}

	var req CreateHomeworkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	params := service.CreateHomeworkParams{
		Title:      req.Title,
		PlayerName: req.PlayerName,
		AccessCode: req.AccessCode,
		DueAt:      req.DueAt,
		Items:      make([]service.HomeworkItemParams, len(req.Items)),
	}
	for i, item := range req.Items {
		params.Items[i] = service.HomeworkItemParams{
			Operation: domain.Operation(item.Operation),
			OperandA:  item.OperandA,
			OperandB:  item.OperandB,
		}
	}

	assignment, err := h.homeworkService.Create(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create homework")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, homeworkToResponse(assignment))
}

// GetHomework handles GET /api/homework/{id}
func (h *HomeworkHandler) GetHomework(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	assignment, err := h.homeworkService.Get(r.Context(), player, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get homework")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, homeworkToResponse(assignment))
}

// GetReport handles GET /api/homework/{id}/report
// The access code is read from the X-Access-Code header.
func (h *HomeworkHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	_, id, ok := handlePlayerAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	code := r.Header.Get(AccessCodeHeader)
	if code == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access code required")
		return
	}

	report, err := h.homeworkService.Report(r.Context(), id, code)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build homework report")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reportToResponse(report))
}
