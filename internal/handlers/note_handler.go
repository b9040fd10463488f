// internal/handlers/note_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/service"
	"go_5_note_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NoteHandler struct {
	service service.NoteService
	logger  *slog.Logger
}

func NewNoteHandler(s service.NoteService, logger *slog.Logger) *NoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{
		service: s,
		logger:  logger,
	}
}

// PostNote は新しいノートを作成するためのハンドラ。
// 必須チェック等は検証パイプライン側で行うため、ここではボディのデコードだけする。
func (h *NoteHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostNote"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostNoteRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	note, err := h.service.PostNote(r.Context(), userID, &req)
	if err != nil {
		logger.Warn("Error posting note in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Note posted successfully",
		slog.String("note_id", note.NoteID.String()),
		slog.String("content_length", string(note.ContentLength)),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, note, logger)
}

// GetNotes はノート一覧を取得するためのハンドラ
func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNotes"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	query, err := parseListNotesQuery(r)
	if err != nil {
		logger.Warn("Invalid list query parameters", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	notes, err := h.service.GetNotes(r.Context(), userID, query)
	if err != nil {
		logger.Error("Error listing notes in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	responses := make([]*model.IndexNoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, note.ToIndexResponse())
	}
	logger.Info("Notes listed successfully", slog.Int("count", len(responses)))
	webutil.RespondWithJSON(w, http.StatusOK, responses, logger)
}

// GetNote は特定のノートを取得するためのハンドラ
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNote"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	noteIDStr := chi.URLParam(r, "note_id")
	noteID, err := uuid.Parse(noteIDStr)
	if err != nil {
		logger.Warn("Invalid note ID format in URL", slog.String("note_id_str", noteIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "note_idの形式が正しくありません。", "note_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("note_id", noteID.String()))

	note, err := h.service.GetNote(r.Context(), userID, noteID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Note not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting note from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Note retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, note, logger)
}

// parseListNotesQuery は一覧クエリパラメータをパースします
func parseListNotesQuery(r *http.Request) (*model.ListNotesQuery, error) {
	query := &model.ListNotesQuery{}

	if noteType := r.URL.Query().Get("type"); noteType != "" {
		if !model.NoteType(noteType).Valid() {
			return nil, model.NewAppError("INVALID_QUERY_PARAM", "typeの値が正しくありません。", "type", model.ErrInvalidInput)
		}
		query.NoteType = noteType
	}
	if order := r.URL.Query().Get("order"); order != "" {
		if order != "asc" && order != "desc" {
			return nil, model.NewAppError("INVALID_QUERY_PARAM", "orderはascまたはdescを指定してください。", "order", model.ErrInvalidInput)
		}
		query.Order = order
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, model.NewAppError("INVALID_QUERY_PARAM", "pageの値が正しくありません。", "page", model.ErrInvalidInput)
		}
		query.Page = page
	}
	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return nil, model.NewAppError("INVALID_QUERY_PARAM", "page_sizeの値が正しくありません。", "page_size", model.ErrInvalidInput)
		}
		query.PageSize = size
	}
	return query, nil
}
