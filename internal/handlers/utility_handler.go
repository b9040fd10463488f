// internal/handlers/utility_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/service"
	"go_5_note_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UtilityHandler struct {
	service service.UtilityService
	logger  *slog.Logger
}

func NewUtilityHandler(s service.UtilityService, logger *slog.Logger) *UtilityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UtilityHandler{
		service: s,
		logger:  logger,
	}
}

// CreateUtility は新しいユーティリティを登録するためのハンドラ
func (h *UtilityHandler) CreateUtility(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateUtility"))

	var req model.CreateUtilityRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	utility, err := h.service.CreateUtility(r.Context(), &req)
	if err != nil {
		logger.Warn("Error creating utility in service", slog.Any("error", err), slog.String("utility_name", req.Name))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Utility created successfully", slog.String("utility_id", utility.UtilityID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, utility.ToResponse(), logger)
}

// GetUtility は特定のユーティリティを取得するためのハンドラ
func (h *UtilityHandler) GetUtility(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUtility"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	utility, err := h.service.GetUtility(r.Context(), utilityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Utility not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting utility from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Utility retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, utility.ToResponse(), logger)
}

// PatchUtility はユーティリティの一部を更新するためのハンドラ。
// kind は作成後不変のためリクエストに含められない (未知フィールドとして拒否される)。
func (h *UtilityHandler) PatchUtility(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchUtility"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	var req model.UpdateUtilityRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	utility, err := h.service.UpdateUtility(r.Context(), utilityID, &req)
	if err != nil {
		logger.Warn("Error updating utility in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Utility updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, utility.ToResponse(), logger)
}

// RefreshCredentials は外部APIクレデンシャルを差し替えるためのハンドラ
func (h *UtilityHandler) RefreshCredentials(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RefreshCredentials"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	var req model.RefreshCredentialsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	if err := h.service.RefreshCredentials(r.Context(), utilityID, &req); err != nil {
		logger.Error("Error refreshing credentials in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Utility credentials refreshed successfully")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUtility はユーティリティと所有データを削除するためのハンドラ
func (h *UtilityHandler) DeleteUtility(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteUtility"))

	utilityID, err := parseUtilityID(r)
	if err != nil {
		logger.Warn("Invalid utility ID format in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("utility_id", utilityID.String()))

	if err := h.service.DeleteUtility(r.Context(), utilityID); err != nil {
		logger.Error("Error deleting utility in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Utility deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func parseUtilityID(r *http.Request) (uuid.UUID, error) {
	utilityIDStr := chi.URLParam(r, "utility_id")
	utilityID, err := uuid.Parse(utilityIDStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "utility_idの形式が正しくありません。", "utility_id", model.ErrInvalidInput)
	}
	return utilityID, nil
}
