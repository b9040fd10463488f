// internal/model/utility.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UtilityKind は外部データソースの種別を示すディスクリミネータ
type UtilityKind string

const (
	UtilityKindNorth UtilityKind = "north"
	UtilityKindSouth UtilityKind = "south"
)

// Utility は独立した組織（テナント）。ユーザー・ノート・取込済みの書籍を所有する。
type Utility struct {
	UtilityID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"utility_id"`
	Name      string      `gorm:"uniqueIndex;not null" json:"name"`
	Kind      UtilityKind `gorm:"type:varchar(20);not null" json:"kind"` // 作成後は変更不可

	// 外部API連携設定
	BaseURL              string     `gorm:"not null" json:"base_url"`
	APIKey               string     `json:"-"`
	APISecret            string     `json:"-"`
	AccessToken          string     `json:"-"`
	AccessTokenExpiresAt *time.Time `json:"-"`
	AuthPath             string     `json:"auth_path"`
	BooksPath            string     `json:"books_path"`
	NotesPath            string     `json:"notes_path"`

	// 語数閾値 (short < medium を UtilityService が保証する)
	ShortWordCountThreshold  int `gorm:"not null" json:"short_word_count_threshold"`
	MediumWordCountThreshold int `gorm:"not null" json:"medium_word_count_threshold"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// GORM用のリレーション (JSONには含めない)
	Users []User `gorm:"foreignKey:UtilityID" json:"-"`
	Notes []Note `gorm:"foreignKey:UtilityID" json:"-"`
	Books []Book `gorm:"foreignKey:UtilityID" json:"-"`
}

func (Utility) TableName() string {
	return "utilities"
}

// Policy は保存済みの閾値からポリシーを組み立てます。
// DBが直接書き換えられて不整合になっていても panic せずエラーを返す。
func (u *Utility) Policy() (ThresholdPolicy, error) {
	return NewThresholdPolicy(u.ShortWordCountThreshold, u.MediumWordCountThreshold)
}

// CreateUtilityRequest はユーティリティ作成APIのリクエストボディ (DTO)
type CreateUtilityRequest struct {
	Name                     string `json:"name" validate:"required,min=1,max=100"`
	Kind                     string `json:"kind" validate:"required"`
	BaseURL                  string `json:"base_url" validate:"required,url"`
	APIKey                   string `json:"api_key" validate:"required"`
	APISecret                string `json:"api_secret" validate:"required"`
	AuthPath                 string `json:"auth_path" validate:"required"`
	BooksPath                string `json:"books_path" validate:"required"`
	NotesPath                string `json:"notes_path" validate:"required"`
	ShortWordCountThreshold  int    `json:"short_word_count_threshold" validate:"required,gt=0"`
	MediumWordCountThreshold int    `json:"medium_word_count_threshold" validate:"required,gt=0"`
}

// UpdateUtilityRequest は部分更新DTO。Kind は含めない（作成後不変のため）。
type UpdateUtilityRequest struct {
	Name                     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	BaseURL                  *string `json:"base_url,omitempty" validate:"omitempty,url"`
	AuthPath                 *string `json:"auth_path,omitempty" validate:"omitempty,min=1"`
	BooksPath                *string `json:"books_path,omitempty" validate:"omitempty,min=1"`
	NotesPath                *string `json:"notes_path,omitempty" validate:"omitempty,min=1"`
	ShortWordCountThreshold  *int    `json:"short_word_count_threshold,omitempty" validate:"omitempty,gt=0"`
	MediumWordCountThreshold *int    `json:"medium_word_count_threshold,omitempty" validate:"omitempty,gt=0"`
}

// RefreshCredentialsRequest は外部APIクレデンシャルの差し替えDTO
type RefreshCredentialsRequest struct {
	APIKey    string `json:"api_key" validate:"required"`
	APISecret string `json:"api_secret" validate:"required"`
}

// UtilityResponse はクライアントに返すユーティリティ情報
type UtilityResponse struct {
	UtilityID                uuid.UUID   `json:"utility_id"`
	Name                     string      `json:"name"`
	Kind                     UtilityKind `json:"kind"`
	BaseURL                  string      `json:"base_url"`
	ShortWordCountThreshold  int         `json:"short_word_count_threshold"`
	MediumWordCountThreshold int         `json:"medium_word_count_threshold"`
	CreatedAt                time.Time   `json:"created_at"`
}

func (u *Utility) ToResponse() *UtilityResponse {
	return &UtilityResponse{
		UtilityID:                u.UtilityID,
		Name:                     u.Name,
		Kind:                     u.Kind,
		BaseURL:                  u.BaseURL,
		ShortWordCountThreshold:  u.ShortWordCountThreshold,
		MediumWordCountThreshold: u.MediumWordCountThreshold,
		CreatedAt:                u.CreatedAt,
	}
}
