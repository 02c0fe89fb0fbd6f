package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/service"
)

// LeaderboardHandler serves rankings and player history
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService service.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	if leaderboardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("leaderboardService cannot be nil for LeaderboardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		logger:             logger.With(slog.String("component", "leaderboard_handler")),
	}
}

// GetLeaderboard handles GET /api/leaderboard?operation=&limit=
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	var op domain.Operation
	if raw := r.URL.Query().Get("operation"); raw != "" {
		parsed, err := domain.ParseOperation(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		op = parsed
	}

	limit, err := getQueryInt(r, "limit", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.leaderboardService.Top(r.Context(), op, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load leaderboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LeaderboardResponse{Operation: op, Entries: entries})
}

// GetHistory handles GET /api/results?limit=
// It lists the authenticated player's recent results.
func (h *LeaderboardHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	player, ok := handlePlayer(w, r, log)
	if !ok {
		return
	}

	limit, err := getQueryInt(r, "limit", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	results, err := h.leaderboardService.History(r.Context(), player, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load results")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		PlayerName: player,
		Results:    resultsToResponse(results),
	})
}
