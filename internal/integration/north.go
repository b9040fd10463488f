// internal/integration/north.go
package integration

import (
	"context"
	"encoding/json"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
)

// northMapper は North 系ユーティリティのペイロードを変換します。
// フィールド名は英語。著者名は姓・名が分かれて提供されるため分割は不要。
// レビュー判定は "IsReview" フラグ。
type northMapper struct{}

func NewNorthMapper() FieldMapper {
	return &northMapper{}
}

// northBook は North API の書籍1件分
type northBook struct {
	ID        json.Number `json:"Id"`
	Title     string      `json:"Title"`
	Author    string      `json:"Author"`
	Genre     string      `json:"Genre"`
	ImageURL  string      `json:"ImageUrl"`
	Publisher string      `json:"Publisher"`
	Year      int         `json:"Year"`
}

// northNote は North API のノート1件分
type northNote struct {
	NoteTitle       string `json:"NoteTitle"`
	IsReview        bool   `json:"IsReview"`
	CreatedAt       string `json:"CreatedAt"`
	Content         string `json:"Content"`
	AuthorEmail     string `json:"AuthorEmail"`
	AuthorFirstName string `json:"AuthorFirstName"`
	AuthorLastName  string `json:"AuthorLastName"`
	BookTitle       string `json:"BookTitle"`
	BookAuthor      string `json:"BookAuthor"`
	BookGenre       string `json:"BookGenre"`
}

func (m *northMapper) MapBooks(ctx context.Context, payload []byte) ([]model.BookImport, int, error) {
	logger := middleware.GetLogger(ctx)

	records, err := extractCollection(model.UtilityKindNorth, payload, "Books")
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	books := make([]model.BookImport, 0, len(records))
	for i, raw := range records {
		var b northBook
		if err := json.Unmarshal(raw, &b); err != nil {
			logger.Warn("Skipping malformed north book record", "index", i, "error", err)
			skipped++
			continue
		}
		if b.ID.String() == "" || b.Title == "" {
			logger.Warn("Skipping north book record with missing fields", "index", i)
			skipped++
			continue
		}
		books = append(books, model.BookImport{
			ExternalID: b.ID.String(),
			Title:      b.Title,
			Author:     b.Author,
			Genre:      b.Genre,
			ImageURL:   b.ImageURL,
			Publisher:  b.Publisher,
			Year:       b.Year,
		})
	}
	return books, skipped, nil
}

func (m *northMapper) MapNotes(ctx context.Context, payload []byte) ([]model.NoteImport, int, error) {
	logger := middleware.GetLogger(ctx)

	records, err := extractCollection(model.UtilityKindNorth, payload, "Notes")
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	notes := make([]model.NoteImport, 0, len(records))
	for i, raw := range records {
		var n northNote
		if err := json.Unmarshal(raw, &n); err != nil {
			logger.Warn("Skipping malformed north note record", "index", i, "error", err)
			skipped++
			continue
		}
		if n.NoteTitle == "" || n.Content == "" || n.AuthorEmail == "" {
			logger.Warn("Skipping north note record with missing fields", "index", i)
			skipped++
			continue
		}
		notes = append(notes, model.NoteImport{
			Title:     n.NoteTitle,
			NoteType:  noteTypeFromFlag(n.IsReview),
			Content:   n.Content,
			CreatedAt: parseImportTime(n.CreatedAt),
			User: model.UserImport{
				Email:     n.AuthorEmail,
				FirstName: n.AuthorFirstName,
				LastName:  n.AuthorLastName,
			},
			Book: model.BookRef{
				Title:  n.BookTitle,
				Author: n.BookAuthor,
				Genre:  n.BookGenre,
			},
		})
	}
	return notes, skipped, nil
}

// northParamValidator は North API 呼び出し前の設定チェック
type northParamValidator struct{}

func NewNorthParamValidator() ParamValidator {
	return &northParamValidator{}
}

func (v *northParamValidator) ValidateSync(u *model.Utility) error {
	var missing []string
	if u.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if u.APISecret == "" {
		missing = append(missing, "api_secret")
	}
	if u.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if u.AuthPath == "" {
		missing = append(missing, "auth_path")
	}
	if len(missing) > 0 {
		return &model.MissingFieldsError{Fields: missing}
	}
	return nil
}

// northAuthProfile は North API のトークン取得リクエスト/レスポンスの形
type northAuthProfile struct{}

func (northAuthProfile) authBody(apiKey, apiSecret string) interface{} {
	return map[string]string{"client_key": apiKey, "client_secret": apiSecret}
}

func (northAuthProfile) parseAuth(body []byte) (string, int, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", 0, err
	}
	if resp.AccessToken == "" {
		return "", 0, &model.UnsupportedPayloadShapeError{Kind: string(model.UtilityKindNorth), MissingKey: "access_token"}
	}
	return resp.AccessToken, resp.ExpiresIn, nil
}
