// internal/service/utility_service_test.go
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

func validCreateUtilityRequest() *model.CreateUtilityRequest {
	return &model.CreateUtilityRequest{
		Name:                     "biblioteca-central",
		Kind:                     "south",
		BaseURL:                  "https://api.biblioteca.example.com",
		APIKey:                   "key",
		APISecret:                "secret",
		AuthPath:                 "/auth/token",
		BooksPath:                "/libros",
		NotesPath:                "/notas",
		ShortWordCountThreshold:  50,
		MediumWordCountThreshold: 100,
	}
}

func Test_utilityService_CreateUtility(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	tests := []struct {
		name      string
		mutate    func(req *model.CreateUtilityRequest)
		setupMock func(repo *mocks.UtilityRepository)
		wantErr   error
	}{
		{
			name:   "正常系: south ユーティリティ作成",
			mutate: func(req *model.CreateUtilityRequest) {},
			setupMock: func(repo *mocks.UtilityRepository) {
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Utility")).
					Run(func(args mock.Arguments) {
						u := args.Get(2).(*model.Utility)
						assert.Equal(t, model.UtilityKindSouth, u.Kind)
						assert.NotEqual(t, uuid.Nil, u.UtilityID)
					}).Return(nil).Once()
			},
		},
		{
			name:      "異常系: 未対応の種別は永続化前に拒否",
			mutate:    func(req *model.CreateUtilityRequest) { req.Kind = "east" },
			setupMock: func(repo *mocks.UtilityRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name: "異常系: short >= medium は拒否",
			mutate: func(req *model.CreateUtilityRequest) {
				req.ShortWordCountThreshold = 100
				req.MediumWordCountThreshold = 100
			},
			setupMock: func(repo *mocks.UtilityRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:   "異常系: 名前の重複は Conflict",
			mutate: func(req *model.CreateUtilityRequest) {},
			setupMock: func(repo *mocks.UtilityRepository) {
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Utility")).
					Return(model.ErrConflict).Once()
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.UtilityRepository)
			tt.setupMock(repo)

			svc := NewUtilityService(db, repo, integration.NewDispatcher())
			req := validCreateUtilityRequest()
			tt.mutate(req)

			utility, err := svc.CreateUtility(ctx, req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, utility)
			}
			repo.AssertExpectations(t)
		})
	}
}

func Test_utilityService_UpdateUtility(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	existing := testUtility(50, 100)

	intPtr := func(v int) *int { return &v }

	t.Run("正常系: 閾値の片方のみ更新しても整合を確認する", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		repo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), existing.UtilityID).
			Return(existing, nil).Twice()
		repo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), existing.UtilityID, mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["short_word_count_threshold"] == 60
		})).Return(nil).Once()

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		_, err := svc.UpdateUtility(ctx, existing.UtilityID, &model.UpdateUtilityRequest{
			ShortWordCountThreshold: intPtr(60),
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("異常系: 片方の更新で short >= medium になる場合は拒否", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		repo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), existing.UtilityID).
			Return(existing, nil).Once()
		// Update は呼ばれないはず

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		_, err := svc.UpdateUtility(ctx, existing.UtilityID, &model.UpdateUtilityRequest{
			ShortWordCountThreshold: intPtr(150),
		})
		require.Error(t, err)

		var policyErr *model.InvalidPolicyError
		require.ErrorAs(t, err, &policyErr)
		assert.Equal(t, 150, policyErr.Short)
		assert.Equal(t, 100, policyErr.Medium)
		repo.AssertExpectations(t)
	})

	t.Run("異常系: ユーティリティが存在しない", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		missingID := uuid.New()
		repo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), missingID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		_, err := svc.UpdateUtility(ctx, missingID, &model.UpdateUtilityRequest{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func Test_utilityService_RefreshCredentials(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	existing := testUtility(50, 100)

	t.Run("正常系: クレデンシャル差し替えで保持トークンも破棄", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		repo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), existing.UtilityID, mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["api_key"] == "new-key" &&
				updates["api_secret"] == "new-secret" &&
				updates["access_token"] == ""
		})).Return(nil).Once()

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		err := svc.RefreshCredentials(ctx, existing.UtilityID, &model.RefreshCredentialsRequest{
			APIKey:    "new-key",
			APISecret: "new-secret",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func Test_utilityService_DeleteUtility(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	t.Run("正常系: 削除成功", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		utilityID := uuid.New()
		repo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), utilityID).
			Return(nil).Once()

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		require.NoError(t, svc.DeleteUtility(ctx, utilityID))
		repo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないユーティリティ", func(t *testing.T) {
		repo := new(mocks.UtilityRepository)
		utilityID := uuid.New()
		repo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), utilityID).
			Return(model.ErrNotFound).Once()

		svc := NewUtilityService(db, repo, integration.NewDispatcher())
		err := svc.DeleteUtility(ctx, utilityID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}
