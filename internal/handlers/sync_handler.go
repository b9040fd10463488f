// internal/handlers/sync_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/service"
	"go_5_note_keep/internal/webutil"
)

type SyncHandler struct {
	service service.SyncService
	logger  *slog.Logger
}

func NewSyncHandler(s service.SyncService, logger *slog.Logger) *SyncHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncHandler{
		service: s,
		logger:  logger,
	}
}

// SyncBooks は外部APIから書籍カタログを取り込むハンドラ
func (h *SyncHandler) SyncBooks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SyncBooks"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	result, err := h.service.SyncBooks(r.Context(), utilityID)
	if err != nil {
		h.logSyncError(logger, "books", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Book sync finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// SyncNotes は外部APIからノートを取り込むハンドラ
func (h *SyncHandler) SyncNotes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SyncNotes"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	result, err := h.service.SyncNotes(r.Context(), utilityID)
	if err != nil {
		h.logSyncError(logger, "notes", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Note sync finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// logSyncError は失敗の種類に応じてログレベルを変えます。
// 外部API側の問題 (形状不一致・到達不能) は Error、設定不備は Warn。
func (h *SyncHandler) logSyncError(logger *slog.Logger, target string, err error) {
	switch {
	case errors.Is(err, model.ErrUtilityUnavailable):
		logger.Error("External API failure during sync", slog.String("target", target), slog.Any("error", err))
	case errors.Is(err, model.ErrNotFound):
		logger.Info("Utility not found for sync", slog.String("target", target), slog.Any("error", err))
	default:
		logger.Warn("Sync rejected before external call", slog.String("target", target), slog.Any("error", err))
	}
}
