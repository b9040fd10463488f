// internal/integration/south.go
package integration

import (
	"context"
	"encoding/json"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
)

// southMapper は South 系ユーティリティのペイロードを変換します。
// フィールド名はスペイン語。著者名は "NombreCompletoAutor" 一つに
// 結合されており、先頭トークンが姓・残りが名という取込元の慣習で分割する。
// レビュー判定は "ReseniaNota" フラグ。
type southMapper struct{}

func NewSouthMapper() FieldMapper {
	return &southMapper{}
}

// southBook は South API の書籍1件分
type southBook struct {
	ID        json.Number `json:"Id"`
	Title     string      `json:"Titulo"`
	Author    string      `json:"Autor"`
	Genre     string      `json:"Genero"`
	ImageURL  string      `json:"ImagenUrl"`
	Publisher string      `json:"Editorial"`
	Year      int         `json:"Año"`
}

// southNote は South API のノート1件分
type southNote struct {
	NoteTitle      string `json:"TituloNota"`
	IsReview       bool   `json:"ReseniaNota"`
	CreatedAt      string `json:"FechaCreacionNota"`
	Content        string `json:"Contenido"`
	AuthorEmail    string `json:"EmailAutor"`
	AuthorFullName string `json:"NombreCompletoAutor"`
	BookTitle      string `json:"TituloLibro"`
	BookAuthor     string `json:"NombreAutorLibro"`
	BookGenre      string `json:"GeneroLibro"`
}

func (m *southMapper) MapBooks(ctx context.Context, payload []byte) ([]model.BookImport, int, error) {
	logger := middleware.GetLogger(ctx)

	records, err := extractCollection(model.UtilityKindSouth, payload, "Libros")
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	books := make([]model.BookImport, 0, len(records))
	for i, raw := range records {
		var b southBook
		if err := json.Unmarshal(raw, &b); err != nil {
			logger.Warn("Skipping malformed south book record", "index", i, "error", err)
			skipped++
			continue
		}
		if b.ID.String() == "" || b.Title == "" {
			logger.Warn("Skipping south book record with missing fields", "index", i)
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

func (m *southMapper) MapNotes(ctx context.Context, payload []byte) ([]model.NoteImport, int, error) {
	logger := middleware.GetLogger(ctx)

	records, err := extractCollection(model.UtilityKindSouth, payload, "Notas")
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	notes := make([]model.NoteImport, 0, len(records))
	for i, raw := range records {
		var n southNote
		if err := json.Unmarshal(raw, &n); err != nil {
			logger.Warn("Skipping malformed south note record", "index", i, "error", err)
			skipped++
			continue
		}
		if n.NoteTitle == "" || n.Content == "" || n.AuthorEmail == "" {
			logger.Warn("Skipping south note record with missing fields", "index", i)
			skipped++
			continue
		}
		lastName, firstName := splitFullName(n.AuthorFullName)
		notes = append(notes, model.NoteImport{
			Title:     n.NoteTitle,
			NoteType:  noteTypeFromFlag(n.IsReview),
			Content:   n.Content,
			CreatedAt: parseImportTime(n.CreatedAt),
			User: model.UserImport{
				Email:     n.AuthorEmail,
				FirstName: firstName,
				LastName:  lastName,
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

// southParamValidator は South API 呼び出し前の設定チェック
type southParamValidator struct{}

func NewSouthParamValidator() ParamValidator {
	return &southParamValidator{}
}

func (v *southParamValidator) ValidateSync(u *model.Utility) error {
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
	if u.BooksPath == "" {
		missing = append(missing, "books_path")
	}
	if u.NotesPath == "" {
		missing = append(missing, "notes_path")
	}
	if len(missing) > 0 {
		return &model.MissingFieldsError{Fields: missing}
	}
	return nil
}

// southAuthProfile は South API のトークン取得リクエスト/レスポンスの形
type southAuthProfile struct{}

func (southAuthProfile) authBody(apiKey, apiSecret string) interface{} {
	return map[string]string{"clave": apiKey, "secreto": apiSecret}
}

func (southAuthProfile) parseAuth(body []byte) (string, int, error) {
	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expira_en"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", 0, err
	}
	if resp.Token == "" {
		return "", 0, &model.UnsupportedPayloadShapeError{Kind: string(model.UtilityKindSouth), MissingKey: "token"}
	}
	return resp.Token, resp.ExpiresIn, nil
}
