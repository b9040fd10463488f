// internal/model/book.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book は外部APIから取り込まれる正規化済みの書籍レコード。
// エンドユーザーが直接作成することはない (FieldMapper 経由のみ)。
type Book struct {
	BookID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"book_id"`
	UtilityID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_books_utility_external" json:"-"`
	ExternalID string    `gorm:"uniqueIndex:uq_books_utility_external;not null" json:"external_id"` // 取込元でのID
	Title      string    `gorm:"not null" json:"title"`
	Author     string    `json:"author"`
	Genre      string    `json:"genre"`
	ImageURL   string    `json:"image_url"`
	Publisher  string    `json:"publisher"`
	Year       int       `json:"year"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// --- FieldMapper が生成する正規化済みレコード ---
// マッパーの出力は外部ID等を保持した中間表現で、永続化は SyncService が行う。

// BookImport は外部ペイロード1件分を正規化した書籍
type BookImport struct {
	ExternalID string
	Title      string
	Author     string
	Genre      string
	ImageURL   string
	Publisher  string
	Year       int
}

// UserImport はノートに付随する著者情報
type UserImport struct {
	Email     string
	FirstName string
	LastName  string
}

// BookRef はノートが参照する書籍の識別情報 (ペイロードにIDがない場合がある)
type BookRef struct {
	Title  string
	Author string
	Genre  string
}

// NoteImport は外部ペイロード1件分を正規化したノート
type NoteImport struct {
	Title     string
	NoteType  NoteType
	Content   string
	CreatedAt time.Time
	User      UserImport
	Book      BookRef
}

// SyncResult は取込結果の集計。スキップは致命的エラーにしない方針のため件数で返す。
type SyncResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
