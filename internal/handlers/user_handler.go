// internal/handlers/user_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/service"
	"go_5_note_keep/internal/webutil"
)

type UserHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewUserHandler(s service.AuthService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		service: s,
		logger:  logger,
	}
}

// GetCurrentUser は認証済みユーザー自身の情報を返すハンドラ
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurrentUser"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("User not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting current user from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Current user retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, user.ToResponse(), logger)
}
