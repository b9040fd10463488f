// internal/service/note_validator_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words は指定した語数の本文を生成するヘルパー
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "palabra"
	}
	return strings.Join(parts, " ")
}

func testUtility(short, medium int) *model.Utility {
	return &model.Utility{
		UtilityID:                uuid.New(),
		Name:                     "test-utility",
		Kind:                     model.UtilityKindNorth,
		ShortWordCountThreshold:  short,
		MediumWordCountThreshold: medium,
	}
}

func testUser(utilityID uuid.UUID) *model.User {
	return &model.User{
		UserID:    uuid.New(),
		UtilityID: utilityID,
		Email:     "author@example.com",
	}
}

func Test_noteValidator_Validate(t *testing.T) {
	ctx := context.Background()
	validator := NewNoteValidator()

	utility := testUtility(50, 100)
	user := testUser(utility.UtilityID)

	candidate := func(title, content, noteType string) *model.NoteCandidate {
		return &model.NoteCandidate{
			Title:    title,
			Content:  content,
			NoteType: noteType,
			Utility:  utility,
			User:     user,
		}
	}

	t.Run("正常系: レビューが short に収まる", func(t *testing.T) {
		note, err := validator.Validate(ctx, candidate("titulo", words(50), "review"))
		require.NoError(t, err)
		assert.Equal(t, model.NoteTypeReview, note.NoteType)
		assert.Equal(t, 50, note.WordCount)
		assert.Equal(t, model.ContentLengthShort, note.ContentLength)
		assert.Equal(t, utility.UtilityID, note.UtilityID)
		assert.Equal(t, user.UserID, note.UserID)
		assert.NotEqual(t, uuid.Nil, note.NoteID)
	})

	t.Run("異常系: レビューが short 閾値を1語でも超えると拒否", func(t *testing.T) {
		_, err := validator.Validate(ctx, candidate("titulo", words(51), "review"))
		require.Error(t, err)

		var tooLong *model.ContentTooLongError
		require.ErrorAs(t, err, &tooLong)
		assert.Equal(t, 50, tooLong.ShortThreshold)
		assert.Equal(t, 51, tooLong.WordCount)
		assert.True(t, errors.Is(err, model.ErrUnprocessable))
	})

	t.Run("正常系: クリティークは長さの制約なし", func(t *testing.T) {
		note, err := validator.Validate(ctx, candidate("titulo", words(500), "critique"))
		require.NoError(t, err)
		assert.Equal(t, model.NoteTypeCritique, note.NoteType)
		assert.Equal(t, model.ContentLengthLong, note.ContentLength)
	})

	t.Run("正常系: クリティークの medium 分類", func(t *testing.T) {
		note, err := validator.Validate(ctx, candidate("titulo", words(100), "critique"))
		require.NoError(t, err)
		assert.Equal(t, model.ContentLengthMedium, note.ContentLength)
	})

	t.Run("異常系: 未知の種別は拒否", func(t *testing.T) {
		_, err := validator.Validate(ctx, candidate("titulo", words(10), "essay"))
		require.Error(t, err)

		var invalidType *model.InvalidNoteTypeError
		require.ErrorAs(t, err, &invalidType)
		assert.Equal(t, "essay", invalidType.Value)
		assert.True(t, errors.Is(err, model.ErrUnprocessable))
	})

	t.Run("異常系: 欠落フィールドは全件まとめて報告", func(t *testing.T) {
		_, err := validator.Validate(ctx, &model.NoteCandidate{
			Utility: utility,
			User:    user,
		})
		require.Error(t, err)

		var missing *model.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.ElementsMatch(t, []string{"title", "content", "note_type"}, missing.Fields)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: 必須チェックは種別チェックより先", func(t *testing.T) {
		// 種別も不正だが、本文が欠けているので MissingFieldsError が返るべき
		_, err := validator.Validate(ctx, &model.NoteCandidate{
			Title:    "titulo",
			NoteType: "essay",
			Utility:  utility,
			User:     user,
		})
		require.Error(t, err)

		var missing *model.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"content"}, missing.Fields)
	})

	t.Run("異常系: 種別チェックは長さチェックより先", func(t *testing.T) {
		// 長すぎる本文だが、種別が不正なので InvalidNoteTypeError が返るべき
		_, err := validator.Validate(ctx, candidate("titulo", words(1000), "essay"))
		require.Error(t, err)

		var invalidType *model.InvalidNoteTypeError
		require.ErrorAs(t, err, &invalidType)
	})

	t.Run("異常系: ユーティリティの閾値が不整合", func(t *testing.T) {
		broken := testUtility(100, 50)
		_, err := validator.Validate(ctx, &model.NoteCandidate{
			Title:    "titulo",
			Content:  words(10),
			NoteType: "review",
			Utility:  broken,
			User:     testUser(broken.UtilityID),
		})
		require.Error(t, err)

		var policyErr *model.InvalidPolicyError
		require.ErrorAs(t, err, &policyErr)
	})

	t.Run("異常系: ユーティリティ・ユーザー未解決", func(t *testing.T) {
		_, err := validator.Validate(ctx, &model.NoteCandidate{
			Title:    "titulo",
			Content:  words(10),
			NoteType: "review",
		})
		require.Error(t, err)

		var missing *model.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.ElementsMatch(t, []string{"utility", "user"}, missing.Fields)
	})
}
