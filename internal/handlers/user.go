package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"Vineyard/internal/config"
	"Vineyard/internal/middleware"
	"Vineyard/internal/service"

	"go.uber.org/zap"
)

// UserHandler обслуживает профиль и регистрацию руководителя кафедры.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type meResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Me возвращает имя и роль владельца access-токена.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.", "not_authenticated")
		return
	}

	u, err := h.UserService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "User not found", "user_not_found")
			return
		}
		h.Logger.Errorw("me failed", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Username: u.Username, Role: u.Role})
}

// CheckHeadUser сообщает, можно ли зарегистрировать руководителя.
func (h *UserHandler) CheckHeadUser(w http.ResponseWriter, r *http.Request) {
	can, err := h.UserService.CanCreateHead(r.Context())
	if err != nil {
		h.Logger.Errorw("check head user failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"can_create_head": can})
}

type registerHeadRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHeadUser создаёт пользователя с ролью head, если его ещё нет.
func (h *UserHandler) RegisterHeadUser(w http.ResponseWriter, r *http.Request) {
	var req registerHeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}

	u, err := h.UserService.RegisterHeadUser(r.Context(), service.HeadUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrHeadExists):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Department Head user already exists."})
		return
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error(), "invalid")
		return
	case err != nil:
		h.Logger.Errorw("register head user failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.Logger.Infow("department head registered", "user_id", u.ID, "username", u.Username)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Department Head user created successfully."})
}
