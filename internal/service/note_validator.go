// internal/service/note_validator.go
package service

import (
	"context"
	"time"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
)

// NoteValidator はノート候補を検証し、通過したものだけを Note にします。
// 検証は 必須チェック → 種別チェック → 長さチェック の順で行い、
// 先の段階で失敗したら後の段階は実行しない。
//
//go:generate mockery --name NoteValidator --output ./mocks --outpkg mocks --case=underscore
type NoteValidator interface {
	Validate(ctx context.Context, candidate *model.NoteCandidate) (*model.Note, error)
}

type noteValidator struct{}

func NewNoteValidator() NoteValidator {
	return &noteValidator{}
}

func (v *noteValidator) Validate(ctx context.Context, candidate *model.NoteCandidate) (*model.Note, error) {
	logger := middleware.GetLogger(ctx)

	// 1. 必須チェック。欠けているフィールドは一度に全部報告する。
	var missing []string
	if candidate.Title == "" {
		missing = append(missing, "title")
	}
	if candidate.Content == "" {
		missing = append(missing, "content")
	}
	if candidate.NoteType == "" {
		missing = append(missing, "note_type")
	}
	if candidate.Utility == nil {
		missing = append(missing, "utility")
	}
	if candidate.User == nil {
		missing = append(missing, "user")
	}
	if len(missing) > 0 {
		return nil, &model.MissingFieldsError{Fields: missing}
	}

	// 2. 種別チェック
	noteType := model.NoteType(candidate.NoteType)
	if !noteType.Valid() {
		return nil, &model.InvalidNoteTypeError{Value: candidate.NoteType}
	}

	// 3. 長さチェック。レビューは short に収まること。クリティークは制約なし。
	policy, err := candidate.Utility.Policy()
	if err != nil {
		logger.Error("Utility has an inconsistent threshold policy",
			"error", err,
			"utility_id", candidate.Utility.UtilityID.String(),
		)
		return nil, err
	}

	note := &model.Note{
		NoteID:    uuid.New(),
		UtilityID: candidate.Utility.UtilityID,
		UserID:    candidate.User.UserID,
		Title:     candidate.Title,
		Content:   candidate.Content,
		NoteType:  noteType,
		CreatedAt: time.Now(),
	}
	note.ApplyPolicy(policy)

	if noteType == model.NoteTypeReview && note.ContentLength != model.ContentLengthShort {
		return nil, &model.ContentTooLongError{
			ShortThreshold: policy.ShortThreshold(),
			WordCount:      note.WordCount,
		}
	}

	return note, nil
}
