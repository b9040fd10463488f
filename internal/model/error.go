// internal/model/error.go
package model

import (
	"errors"
	"fmt"
	"strings"
)

// アプリケーション固有のエラー
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalServer     = errors.New("internal server error")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource conflict") // 重複エラー用
	ErrUnprocessable      = errors.New("unprocessable entity")
	ErrUtilityUnavailable = errors.New("utility unavailable") // 外部APIの応答が想定外の場合
)

// ErrorDetail はAPIエラーレスポンスに含めるエラーの詳細
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコードとクライアント向けメッセージを持つアプリケーションエラー。
// Err にセンチネルエラーをラップし、HTTPステータスの判定に使う。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// --- ノート検証の型付きエラー ---
// errors.As で詳細を取り出せるように、検証段階ごとに型を分ける。

// MissingFieldsError は必須フィールドの欠落。欠けたフィールド名をすべて保持する。
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrInvalidInput }

// InvalidNoteTypeError は note_type が列挙値以外だった場合のエラー
type InvalidNoteTypeError struct {
	Value string
}

func (e *InvalidNoteTypeError) Error() string {
	return fmt.Sprintf("invalid note type: %q", e.Value)
}

func (e *InvalidNoteTypeError) Unwrap() error { return ErrUnprocessable }

// ContentTooLongError はレビューの本文が short に収まらなかった場合のエラー。
// ユーザー向けメッセージ生成のために閾値と実際の語数を保持する。
type ContentTooLongError struct {
	ShortThreshold int
	WordCount      int
}

func (e *ContentTooLongError) Error() string {
	return fmt.Sprintf("review content exceeds %d words (got %d)", e.ShortThreshold, e.WordCount)
}

func (e *ContentTooLongError) Unwrap() error { return ErrUnprocessable }

// InvalidPolicyError は閾値設定の不整合 (short >= medium、または正でない値)
type InvalidPolicyError struct {
	Short  int
	Medium int
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid threshold policy: short=%d medium=%d", e.Short, e.Medium)
}

func (e *InvalidPolicyError) Unwrap() error { return ErrInvalidInput }

// UnsupportedKindError は登録されていないユーティリティ種別
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported utility kind: %q", e.Kind)
}

func (e *UnsupportedKindError) Unwrap() error { return ErrInvalidInput }

// UnsupportedPayloadShapeError は外部APIレスポンスのトップレベル構造が
// 期待と異なる場合のエラー。レコード単位の欠落とは区別する。
type UnsupportedPayloadShapeError struct {
	Kind       string
	MissingKey string
}

func (e *UnsupportedPayloadShapeError) Error() string {
	return fmt.Sprintf("unsupported payload shape for kind %q: missing key %q", e.Kind, e.MissingKey)
}

func (e *UnsupportedPayloadShapeError) Unwrap() error { return ErrUtilityUnavailable }
