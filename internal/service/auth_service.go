// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_note_keep/internal/config"
	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	db          *gorm.DB
	cfg         *config.Config
	userRepo    repository.UserRepository
	utilityRepo repository.UtilityRepository
	mailer      Mailer
}

func NewAuthService(
	db *gorm.DB,
	cfg *config.Config,
	userRepo repository.UserRepository,
	utilityRepo repository.UtilityRepository,
	mailer Mailer,
) AuthService {
	return &authService{
		db:          db,
		cfg:         cfg,
		userRepo:    userRepo,
		utilityRepo: utilityRepo,
		mailer:      mailer,
	}
}

// Register は新規ユーザーを登録します。メールアドレスはユーティリティ内で一意。
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	utilityID, err := uuid.Parse(req.UtilityID)
	if err != nil {
		return nil, model.NewAppError("INVALID_UTILITY_ID", "ユーティリティIDの形式が不正です", "utility_id", model.ErrInvalidInput)
	}

	utility, err := s.utilityRepo.FindByID(ctx, s.db, utilityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("UTILITY_NOT_FOUND", "指定されたユーティリティが存在しません", "utility_id", model.ErrInvalidInput)
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error hashing password", "error", err)
		return nil, fmt.Errorf("authService.Register: %w", err)
	}
	hashStr := string(hash)

	user := &model.User{
		UserID:       uuid.New(),
		UtilityID:    utility.UtilityID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: &hashStr,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("EMAIL_ALREADY_EXISTS", "このメールアドレスは既に登録されています", "email", model.ErrConflict)
		}
		return nil, fmt.Errorf("authService.Register: %w", err)
	}

	// 送信失敗で登録自体を失敗にはしない
	subject := fmt.Sprintf("%s へようこそ", config.AppName)
	body := fmt.Sprintf("%s %s さん\n\n%s (%s) への登録が完了しました。", user.LastName, user.FirstName, config.AppName, utility.Name)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		logger.Warn("Failed to send welcome email", "error", err, "user_id", user.UserID.String())
	}

	logger.Info("User registered",
		"user_id", user.UserID.String(),
		"utility_id", utility.UtilityID.String(),
	)
	return user, nil
}

// Login はパスワードを検証してアクセストークンを発行します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	utilityID, err := uuid.Parse(req.UtilityID)
	if err != nil {
		return nil, model.NewAppError("INVALID_UTILITY_ID", "ユーティリティIDの形式が不正です", "utility_id", model.ErrInvalidInput)
	}

	user, err := s.userRepo.FindByEmail(ctx, s.db, utilityID, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// ユーザーの存在有無は漏らさない
			return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません", "", model.ErrForbidden)
		}
		return nil, err
	}

	// 取込済みユーザー (パスワード未設定) はログイン不可
	if user.PasswordHash == nil {
		return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません", "", model.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません", "", model.ErrForbidden)
	}

	token, err := s.generateToken(user)
	if err != nil {
		logger.Error("Error generating JWT", "error", err, "user_id", user.UserID.String())
		return nil, fmt.Errorf("authService.Login: %w", err)
	}

	logger.Info("User logged in", "user_id", user.UserID.String())
	return &model.LoginResponse{AccessToken: token}, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, s.db, userID)
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.JWTCustomClaims{
		UtilityID: user.UtilityID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiresInMins) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
