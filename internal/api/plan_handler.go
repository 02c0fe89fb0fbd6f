package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/practice"
	"github.com/phrazzld/tally-api/internal/platform/logger"
)

// PlanHandler serves worked solutions.
type PlanHandler struct {
	logger *slog.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(logger *slog.Logger) *PlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanHandler{logger: logger.With(slog.String("component", "plan_handler"))}
}

// GetPlan handles GET /api/plans/{operation}?a=&b=
// It returns every target of the solution, expected digits included.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	op, err := domain.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if r.URL.Query().Get("a") == "" || r.URL.Query().Get("b") == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameters a and b are required")
		return
	}
	a, err := getQueryInt(r, "a", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	b, err := getQueryInt(r, "b", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	worked, err := practice.Work(op, a, b)
	if err != nil {
		log.Debug("plan rejected",
			slog.String("operation", string(op)),
			slog.Int("a", a),
			slog.Int("b", b))
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, worked)
}
