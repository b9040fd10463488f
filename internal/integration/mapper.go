// internal/integration/mapper.go
package integration

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go_5_note_keep/internal/model"
)

// FieldMapper はユーティリティ種別ごとの外部ペイロード変換器。
// 生のレスポンスボディを正規化済みレコード列に変換する。
//
// バッチ内の不正レコードはスキップして処理を継続し、スキップ件数を返す
// (トップレベルのキー欠落のみ UnsupportedPayloadShapeError で全体を失敗させる)。
type FieldMapper interface {
	MapBooks(ctx context.Context, payload []byte) ([]model.BookImport, int, error)
	MapNotes(ctx context.Context, payload []byte) ([]model.NoteImport, int, error)
}

// extractCollection はトップレベルのコレクションキーを取り出します。
// キーが存在しない、またはルートがオブジェクトでない場合は形状エラー。
func extractCollection(kind model.UtilityKind, payload []byte, key string) ([]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, &model.UnsupportedPayloadShapeError{Kind: string(kind), MissingKey: key}
	}
	raw, ok := root[key]
	if !ok {
		return nil, &model.UnsupportedPayloadShapeError{Kind: string(kind), MissingKey: key}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &model.UnsupportedPayloadShapeError{Kind: string(kind), MissingKey: key}
	}
	return records, nil
}

// parseImportTime は取込元のタイムスタンプをパースします。
// フォーマット不明の場合はゼロ値 (レコード自体はスキップしない)。
func parseImportTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitFullName は結合されたフルネームを姓と名に分割します。
// 取込元の慣習: 先頭トークンが姓、残り全部が名。三語以上の名前でも
// 名を切り捨てない (西洋式の語順は仮定しない)。
func splitFullName(fullName string) (lastName, firstName string) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return "", ""
	}
	lastName = tokens[0]
	firstName = strings.Join(tokens[1:], " ")
	return lastName, firstName
}

// noteTypeFromFlag は取込元のレビューフラグから種別を導出します。
// true ならレビュー、それ以外はクリティーク。
func noteTypeFromFlag(isReview bool) model.NoteType {
	if isReview {
		return model.NoteTypeReview
	}
	return model.NoteTypeCritique
}
