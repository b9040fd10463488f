// internal/model/note.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteType はノートの種別
type NoteType string

const (
	NoteTypeReview   NoteType = "review"   // short 制約あり
	NoteTypeCritique NoteType = "critique" // 長さ制約なし
)

// Valid は既知の種別かどうかを返します
func (t NoteType) Valid() bool {
	return t == NoteTypeReview || t == NoteTypeCritique
}

// Note は書籍に対する短い注釈。NoteValidator 経由でのみ生成され、作成後は不変。
type Note struct {
	NoteID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UtilityID uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"` // クエリ局所性のため user から非正規化
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	BookID    *uuid.UUID `gorm:"type:uuid;index" json:"book_id,omitempty"` // 外部APIから取り込んだノートのみ書籍に紐づく
	Title     string     `gorm:"not null" json:"title"`
	Content   string     `gorm:"not null" json:"content"`
	NoteType  NoteType   `gorm:"type:varchar(20);not null" json:"type"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 導出属性。DBには保存せず、作成時（または読み出し時）にポリシーから計算する。
	WordCount     int           `gorm:"-" json:"word_count"`
	ContentLength ContentLength `gorm:"-" json:"content_length"`
}

func (Note) TableName() string {
	return "notes"
}

// CountWords は本文を空白区切りでトークン化した語数を返します。空文字列は0語。
func (n *Note) CountWords() int {
	return len(strings.Fields(n.Content))
}

// ApplyPolicy は導出属性 (word_count / content_length) を計算してキャッシュします
func (n *Note) ApplyPolicy(policy ThresholdPolicy) {
	n.WordCount = n.CountWords()
	n.ContentLength = policy.Classify(n.WordCount)
}

// NoteCandidate は検証前のノート候補。HTTP層がパースして NoteValidator に渡す。
type NoteCandidate struct {
	Title    string
	Content  string
	NoteType string
	Utility  *Utility
	User     *User
}

// PostNoteRequest はノート作成APIのリクエストボディ (DTO)。
// 必須チェックは NoteValidator が行うため validate タグは付けない
// (欠落フィールドのエラーを検証パイプラインの順序で返す必要がある)。
type PostNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// ListNotesQuery はノート一覧のフィルタ/ページングパラメータ
type ListNotesQuery struct {
	NoteType string // 空なら全種別
	Order    string // "asc" / "desc" / 空
	Page     int
	PageSize int
}

// IndexNoteResponse は一覧用の軽量レスポンス
type IndexNoteResponse struct {
	NoteID        uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Type          NoteType      `json:"type"`
	ContentLength ContentLength `json:"content_length"`
}

func (n *Note) ToIndexResponse() *IndexNoteResponse {
	return &IndexNoteResponse{
		NoteID:        n.NoteID,
		Title:         n.Title,
		Type:          n.NoteType,
		ContentLength: n.ContentLength,
	}
}
