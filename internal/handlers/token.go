package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"Vineyard/internal/config"
	"Vineyard/internal/middleware"
	"Vineyard/internal/tokens"

	"go.uber.org/zap"
)

// TokenHandler проверяет токены, выданные сервером.
type TokenHandler struct {
	Logger  *zap.SugaredLogger
	Config  *config.Config
	Metrics *middleware.Metrics
}

func NewTokenHandler(logger *zap.SugaredLogger, cfg *config.Config, metrics *middleware.Metrics) *TokenHandler {
	return &TokenHandler{Logger: logger, Config: cfg, Metrics: metrics}
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify отвечает 200 на валидный токен (access или refresh) и 401 на любой другой.
func (h *TokenHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		h.count("bad_request")
		writeJSON(w, http.StatusBadRequest, map[string][]string{"token": {"This field is required."}})
		return
	}

	if _, err := tokens.Parse(h.Config.AuthSecret, req.Token); err != nil {
		h.Logger.Debugw("token verify failed", "error", err)
		h.count("invalid")
		writeError(w, http.StatusUnauthorized, "Token is invalid or expired", "token_not_valid")
		return
	}

	h.count("valid")
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *TokenHandler) count(result string) {
	if h.Metrics != nil {
		h.Metrics.TokenVerify.WithLabelValues(result).Inc()
	}
}
