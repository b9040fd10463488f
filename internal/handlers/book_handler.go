// internal/handlers/book_handler.go
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

type BookHandler struct {
	service service.BookService
	logger  *slog.Logger
}

func NewBookHandler(s service.BookService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{
		service: s,
		logger:  logger,
	}
}

// GetBooks は自ユーティリティに取り込まれた書籍の一覧を返すハンドラ
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetBooks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	books, err := h.service.GetBooks(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("User not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting books from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Books retrieved successfully", slog.Int("count", len(books)))
	webutil.RespondWithJSON(w, http.StatusOK, books, logger)
}
