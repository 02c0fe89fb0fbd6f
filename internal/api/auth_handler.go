package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/service/auth"
)

// AuthHandler issues player tokens.
type AuthHandler struct {
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /api/auth/token. Players are identified by name
// only; the token scopes sessions and history to that name.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	player := strings.TrimSpace(req.PlayerName)
	token, err := h.jwtService.GenerateToken(r.Context(), player)
	if err != nil {
		log.Debug("token not issued", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TokenResponse{
		PlayerName: player,
		Token:      token,
	})
}
