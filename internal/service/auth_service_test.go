// internal/service/auth_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository/mocks"
	svcmocks "go_5_note_keep/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func Test_authService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	cfg := testConfig()
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpiresInMins = 60

	utility := testUtility(50, 100)

	validReq := func() *model.RegisterRequest {
		return &model.RegisterRequest{
			UtilityID: utility.UtilityID.String(),
			Email:     "elena@example.com",
			Password:  "password123",
			FirstName: "Elena",
			LastName:  "García",
		}
	}

	t.Run("正常系: パスワードはハッシュ化して保存し、ウェルカムメールを送る", func(t *testing.T) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		svc := NewAuthService(db, cfg, userRepo, utilityRepo, mailer)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(2).(*model.User)
				require.NotNil(t, user.PasswordHash)
				assert.NotEqual(t, "password123", *user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("password123")))
			}).Return(nil).Once()
		mailer.On("Send", ctx, "elena@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return(nil).Once()

		user, err := svc.Register(ctx, validReq())

		require.NoError(t, err)
		assert.Equal(t, utility.UtilityID, user.UtilityID)
		assert.NotEqual(t, uuid.Nil, user.UserID)
	})

	t.Run("正常系: メール送信に失敗しても登録は成功する", func(t *testing.T) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		svc := NewAuthService(db, cfg, userRepo, utilityRepo, mailer)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
			Return(nil).Once()
		mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("ses unavailable")).Once()

		_, err := svc.Register(ctx, validReq())

		assert.NoError(t, err)
	})

	t.Run("異常系: メールアドレス重複は EMAIL_ALREADY_EXISTS", func(t *testing.T) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		svc := NewAuthService(db, cfg, userRepo, utilityRepo, mailer)

		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), utility.UtilityID).
			Return(utility, nil).Once()
		userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
			Return(model.ErrConflict).Once()

		_, err := svc.Register(ctx, validReq())

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "EMAIL_ALREADY_EXISTS", appErr.Detail.Code)
		assert.True(t, errors.Is(err, model.ErrConflict))
		mailer.AssertNotCalled(t, "Send")
	})

	t.Run("異常系: 存在しないユーティリティは登録できない", func(t *testing.T) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		svc := NewAuthService(db, cfg, userRepo, utilityRepo, mailer)

		unknownID := uuid.New()
		utilityRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), unknownID).
			Return(nil, model.ErrNotFound).Once()

		req := validReq()
		req.UtilityID = unknownID.String()
		_, err := svc.Register(ctx, req)

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UTILITY_NOT_FOUND", appErr.Detail.Code)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("異常系: UUIDでないユーティリティIDは 400 相当", func(t *testing.T) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		svc := NewAuthService(db, cfg, userRepo, utilityRepo, mailer)

		req := validReq()
		req.UtilityID = "not-a-uuid"
		_, err := svc.Register(ctx, req)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB()

	cfg := testConfig()
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpiresInMins = 60

	utilityID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	hashStr := string(hash)

	registeredUser := &model.User{
		UserID:       uuid.New(),
		UtilityID:    utilityID,
		Email:        "elena@example.com",
		PasswordHash: &hashStr,
	}

	newService := func(t *testing.T) (*mocks.UserRepository, AuthService) {
		userRepo := mocks.NewUserRepository(t)
		utilityRepo := mocks.NewUtilityRepository(t)
		mailer := svcmocks.NewMockMailer(t)
		return userRepo, NewAuthService(db, cfg, userRepo, utilityRepo, mailer)
	}

	t.Run("正常系: 正しいパスワードでトークンを発行する", func(t *testing.T) {
		userRepo, svc := newService(t)

		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utilityID, "elena@example.com").
			Return(registeredUser, nil).Once()

		resp, err := svc.Login(ctx, &model.LoginRequest{
			UtilityID: utilityID.String(),
			Email:     "elena@example.com",
			Password:  "password123",
		})

		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		// 発行されたトークンのクレームを検証
		claims := &model.JWTCustomClaims{}
		token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, registeredUser.UserID.String(), claims.Subject)
		assert.Equal(t, utilityID.String(), claims.UtilityID)
	})

	t.Run("異常系: パスワード不一致は INVALID_CREDENTIALS", func(t *testing.T) {
		userRepo, svc := newService(t)

		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utilityID, "elena@example.com").
			Return(registeredUser, nil).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{
			UtilityID: utilityID.String(),
			Email:     "elena@example.com",
			Password:  "wrong-password",
		})

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.Detail.Code)
		assert.True(t, errors.Is(err, model.ErrForbidden))
	})

	t.Run("異常系: 存在しないユーザーも同じエラーメッセージ", func(t *testing.T) {
		userRepo, svc := newService(t)

		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utilityID, "nadie@example.com").
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{
			UtilityID: utilityID.String(),
			Email:     "nadie@example.com",
			Password:  "password123",
		})

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.Detail.Code)
	})

	t.Run("異常系: 取込由来でパスワード未設定のユーザーはログイン不可", func(t *testing.T) {
		userRepo, svc := newService(t)

		importedUser := &model.User{
			UserID:       uuid.New(),
			UtilityID:    utilityID,
			Email:        "importado@example.com",
			PasswordHash: nil,
		}
		userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), utilityID, "importado@example.com").
			Return(importedUser, nil).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{
			UtilityID: utilityID.String(),
			Email:     "importado@example.com",
			Password:  "password123",
		})

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.Detail.Code)
	})
}
