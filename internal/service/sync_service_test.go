// internal/service/sync_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_5_note_keep/internal/integration"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- 連携部品のテスト用フェイク ---

type fakeClient struct {
	booksPayload []byte
	notesPayload []byte
	err          error
}

func (c *fakeClient) FetchBooks(ctx context.Context) ([]byte, error) { return c.booksPayload, c.err }
func (c *fakeClient) FetchNotes(ctx context.Context) ([]byte, error) { return c.notesPayload, c.err }

type fakeMapper struct {
	books   []model.BookImport
	notes   []model.NoteImport
	skipped int
	err     error
}

func (m *fakeMapper) MapBooks(ctx context.Context, payload []byte) ([]model.BookImport, int, error) {
	return m.books, m.skipped, m.err
}

func (m *fakeMapper) MapNotes(ctx context.Context, payload []byte) ([]model.NoteImport, int, error) {
	return m.notes, m.skipped, m.err
}

type fakeParams struct {
	err error
}

func (p *fakeParams) ValidateSync(u *model.Utility) error { return p.err }

type fakeResolver struct {
	resolved integration.Resolved
	err      error
}

func (r *fakeResolver) Resolve(utility *model.Utility) (integration.Resolved, error) {
	return r.resolved, r.err
}

func Test_syncService_SyncBooks(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	utility := testUtility(50, 100)

	t.Run("正常系: マッパー出力を upsert し、スキップ件数を引き継ぐ", func(t *testing.T) {
		utilityRepo := new(mocks.UtilityRepository)
		userRepo := new(mocks.UserRepository)
		bookRepo := new(mocks.BookRepository)
		noteRepo := new(mocks.NoteRepository)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()
		bookRepo.On("Upsert", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(b *model.Book) bool {
			return b.UtilityID == utility.UtilityID && b.ExternalID != ""
		})).Return(nil).Twice()

		resolver := &fakeResolver{resolved: integration.Resolved{
			Client: &fakeClient{booksPayload: []byte(`{}`)},
			Params: &fakeParams{},
			Mapper: &fakeMapper{
				books: []model.BookImport{
					{ExternalID: "1", Title: "Cien años de soledad"},
					{ExternalID: "2", Title: "Rayuela"},
				},
				skipped: 1,
			},
		}}

		svc := NewSyncService(db, utilityRepo, userRepo, bookRepo, noteRepo, NewNoteValidator(), resolver)
		result, err := svc.SyncBooks(ctx, utility.UtilityID)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 1, result.Skipped)
		bookRepo.AssertExpectations(t)
	})

	t.Run("異常系: 設定不備なら外部APIを呼ばない", func(t *testing.T) {
		utilityRepo := new(mocks.UtilityRepository)
		userRepo := new(mocks.UserRepository)
		bookRepo := new(mocks.BookRepository)
		noteRepo := new(mocks.NoteRepository)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()

		resolver := &fakeResolver{resolved: integration.Resolved{
			Client: &fakeClient{err: errors.New("must not be called")},
			Params: &fakeParams{err: &model.MissingFieldsError{Fields: []string{"api_key"}}},
			Mapper: &fakeMapper{},
		}}

		svc := NewSyncService(db, utilityRepo, userRepo, bookRepo, noteRepo, NewNoteValidator(), resolver)
		_, err := svc.SyncBooks(ctx, utility.UtilityID)
		require.Error(t, err)

		var missing *model.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"api_key"}, missing.Fields)
	})

	t.Run("異常系: 未対応の種別は Resolve で失敗", func(t *testing.T) {
		utilityRepo := new(mocks.UtilityRepository)
		userRepo := new(mocks.UserRepository)
		bookRepo := new(mocks.BookRepository)
		noteRepo := new(mocks.NoteRepository)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()

		resolver := &fakeResolver{err: &model.UnsupportedKindError{Kind: "east"}}

		svc := NewSyncService(db, utilityRepo, userRepo, bookRepo, noteRepo, NewNoteValidator(), resolver)
		_, err := svc.SyncBooks(ctx, utility.UtilityID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}

func Test_syncService_SyncNotes(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	utility := testUtility(50, 100)
	existingUser := testUser(utility.UtilityID)

	t.Run("正常系: 著者を find-or-create し、検証に落ちたノートはスキップ", func(t *testing.T) {
		utilityRepo := new(mocks.UtilityRepository)
		userRepo := new(mocks.UserRepository)
		bookRepo := new(mocks.BookRepository)
		noteRepo := new(mocks.NoteRepository)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()

		// 既存著者は作成されない
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID, existingUser.Email).
			Return(existingUser, nil).Once()
		// 新規著者は作成される (パスワードなし)
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID, "nueva@example.com").
			Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "nueva@example.com" && u.PasswordHash == nil
		})).Return(nil).Once()

		bookRepo.On("FindByTitle", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID, "Rayuela").
			Return(&model.Book{BookID: uuid.New(), UtilityID: utility.UtilityID, Title: "Rayuela"}, nil).Once()

		// 有効なノートは1件だけ保存される
		noteRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(n *model.Note) bool {
			return n.NoteType == model.NoteTypeReview && n.BookID != nil
		})).Return(nil).Once()

		resolver := &fakeResolver{resolved: integration.Resolved{
			Client: &fakeClient{notesPayload: []byte(`{}`)},
			Params: &fakeParams{},
			Mapper: &fakeMapper{
				notes: []model.NoteImport{
					{
						Title:    "una reseña corta",
						NoteType: model.NoteTypeReview,
						Content:  words(40),
						User:     model.UserImport{Email: existingUser.Email},
						Book:     model.BookRef{Title: "Rayuela"},
					},
					{
						// レビューなのに長すぎる: 検証で落ちてスキップされる
						Title:    "demasiado larga",
						NoteType: model.NoteTypeReview,
						Content:  words(200),
						User:     model.UserImport{Email: "nueva@example.com", FirstName: "Elena", LastName: "García"},
					},
				},
				skipped: 1,
			},
		}}

		svc := NewSyncService(db, utilityRepo, userRepo, bookRepo, noteRepo, NewNoteValidator(), resolver)
		result, err := svc.SyncNotes(ctx, utility.UtilityID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 2, result.Skipped) // マッパーでのスキップ1 + 検証でのスキップ1

		utilityRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		bookRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
	})

	t.Run("異常系: ペイロード形状エラーは取込全体を失敗させる", func(t *testing.T) {
		utilityRepo := new(mocks.UtilityRepository)
		userRepo := new(mocks.UserRepository)
		bookRepo := new(mocks.BookRepository)
		noteRepo := new(mocks.NoteRepository)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()

		resolver := &fakeResolver{resolved: integration.Resolved{
			Client: &fakeClient{notesPayload: []byte(`[]`)},
			Params: &fakeParams{},
			Mapper: &fakeMapper{err: &model.UnsupportedPayloadShapeError{Kind: "south", MissingKey: "Notas"}},
		}}

		svc := NewSyncService(db, utilityRepo, userRepo, bookRepo, noteRepo, NewNoteValidator(), resolver)
		_, err := svc.SyncNotes(ctx, utility.UtilityID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUtilityUnavailable))
	})
}
