// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go_5_note_keep/internal/model"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// これがアプリケーションのエラーハンドリングの中心となります。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	// エラーの根本原因に基づいてHTTPステータスコードを決定
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		// AppError の場合、その詳細情報をレスポンスとして使用
		errResp = model.APIErrorResponse{Error: appErr.Detail}
	} else if detail, ok := mapDomainError(err); ok {
		// 検証系の型付きエラーはクライアント向けの詳細に変換する
		errResp = model.APIErrorResponse{Error: detail}
	} else {
		// AppError ではない、予期せぬエラーの場合
		logger.Error("Unhandled error", slog.Any("error", err))

		// クライアントには汎用的なエラーメッセージを返す
		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    "INTERNAL_SERVER_ERROR",
				Message: "サーバー内部でエラーが発生しました。",
			},
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// mapDomainError は検証パイプライン等の型付きエラーを ErrorDetail に変換します
func mapDomainError(err error) (model.ErrorDetail, bool) {
	var missingErr *model.MissingFieldsError
	if errors.As(err, &missingErr) {
		return model.ErrorDetail{
			Code:    "MISSING_FIELDS",
			Message: fmt.Sprintf("必須フィールドが不足しています: %s", strings.Join(missingErr.Fields, ", ")),
			Field:   strings.Join(missingErr.Fields, ","),
		}, true
	}

	var typeErr *model.InvalidNoteTypeError
	if errors.As(err, &typeErr) {
		return model.ErrorDetail{
			Code:    "INVALID_NOTE_TYPE",
			Message: fmt.Sprintf("ノート種別 %q は使用できません。review または critique を指定してください。", typeErr.Value),
			Field:   "type",
		}, true
	}

	var lengthErr *model.ContentTooLongError
	if errors.As(err, &lengthErr) {
		return model.ErrorDetail{
			Code:    "CONTENT_TOO_LONG",
			Message: fmt.Sprintf("レビューの本文は%d語以内にしてください (現在%d語)。", lengthErr.ShortThreshold, lengthErr.WordCount),
			Field:   "content",
		}, true
	}

	var policyErr *model.InvalidPolicyError
	if errors.As(err, &policyErr) {
		return model.ErrorDetail{
			Code:    "INVALID_THRESHOLD_POLICY",
			Message: "語数閾値は short < medium となる正の値で指定してください。",
		}, true
	}

	var kindErr *model.UnsupportedKindError
	if errors.As(err, &kindErr) {
		return model.ErrorDetail{
			Code:    "UNSUPPORTED_KIND",
			Message: fmt.Sprintf("ユーティリティ種別 %q には対応していません。", kindErr.Kind),
			Field:   "kind",
		}, true
	}

	var shapeErr *model.UnsupportedPayloadShapeError
	if errors.As(err, &shapeErr) {
		return model.ErrorDetail{
			Code:    "UPSTREAM_PAYLOAD_ERROR",
			Message: "外部APIの応答が想定した形式ではありません。",
		}, true
	}

	return model.ErrorDetail{}, false
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	// AppErrorの場合は、ラップされたエラーで判定する
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrUtilityUnavailable):
		return http.StatusInternalServerError // 外部APIの不整合は上流起因の500
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR", "message":"レスポンス生成中にエラーが発生しました。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
