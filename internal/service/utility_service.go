// internal/service/utility_service.go
package service

import (
	"context"
	"fmt"

	"go_5_note_keep/internal/integration"
	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name UtilityService --output ./mocks --outpkg mocks --case=underscore
type UtilityService interface {
	CreateUtility(ctx context.Context, req *model.CreateUtilityRequest) (*model.Utility, error)
	GetUtility(ctx context.Context, utilityID uuid.UUID) (*model.Utility, error)
	UpdateUtility(ctx context.Context, utilityID uuid.UUID, req *model.UpdateUtilityRequest) (*model.Utility, error)
	RefreshCredentials(ctx context.Context, utilityID uuid.UUID, req *model.RefreshCredentialsRequest) error
	DeleteUtility(ctx context.Context, utilityID uuid.UUID) error
}

type utilityService struct {
	db          *gorm.DB
	utilityRepo repository.UtilityRepository
	dispatcher  *integration.Dispatcher
}

func NewUtilityService(db *gorm.DB, utilityRepo repository.UtilityRepository, dispatcher *integration.Dispatcher) UtilityService {
	return &utilityService{
		db:          db,
		utilityRepo: utilityRepo,
		dispatcher:  dispatcher,
	}
}

// CreateUtility は新規ユーティリティを登録します。
// 種別と閾値はここで検証し、不正なら永続化せずに失敗させる。
// 未対応の種別を後続の同期時まで持ち越さないこと。
func (s *utilityService) CreateUtility(ctx context.Context, req *model.CreateUtilityRequest) (*model.Utility, error) {
	logger := middleware.GetLogger(ctx)

	kind := model.UtilityKind(req.Kind)
	if !integration.SupportedKind(kind) {
		return nil, &model.UnsupportedKindError{Kind: req.Kind}
	}

	if _, err := model.NewThresholdPolicy(req.ShortWordCountThreshold, req.MediumWordCountThreshold); err != nil {
		return nil, err
	}

	utility := &model.Utility{
		UtilityID:                uuid.New(),
		Name:                     req.Name,
		Kind:                     kind,
		BaseURL:                  req.BaseURL,
		APIKey:                   req.APIKey,
		APISecret:                req.APISecret,
		AuthPath:                 req.AuthPath,
		BooksPath:                req.BooksPath,
		NotesPath:                req.NotesPath,
		ShortWordCountThreshold:  req.ShortWordCountThreshold,
		MediumWordCountThreshold: req.MediumWordCountThreshold,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.utilityRepo.Create(ctx, tx, utility)
	})
	if err != nil {
		return nil, fmt.Errorf("utilityService.CreateUtility: %w", err)
	}

	logger.Info("Utility created",
		"utility_id", utility.UtilityID.String(),
		"utility_name", utility.Name,
		"kind", string(utility.Kind),
	)
	return utility, nil
}

func (s *utilityService) GetUtility(ctx context.Context, utilityID uuid.UUID) (*model.Utility, error) {
	return s.utilityRepo.FindByID(ctx, s.db, utilityID)
}

// UpdateUtility は部分更新。Kind は受け付けない（作成後不変）。
// 閾値は更新後の組み合わせで short < medium を維持することを確認する。
func (s *utilityService) UpdateUtility(ctx context.Context, utilityID uuid.UUID, req *model.UpdateUtilityRequest) (*model.Utility, error) {
	logger := middleware.GetLogger(ctx)

	utility, err := s.utilityRepo.FindByID(ctx, s.db, utilityID)
	if err != nil {
		return nil, err
	}

	short := utility.ShortWordCountThreshold
	medium := utility.MediumWordCountThreshold
	if req.ShortWordCountThreshold != nil {
		short = *req.ShortWordCountThreshold
	}
	if req.MediumWordCountThreshold != nil {
		medium = *req.MediumWordCountThreshold
	}
	if _, err := model.NewThresholdPolicy(short, medium); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.BaseURL != nil {
		updates["base_url"] = *req.BaseURL
	}
	if req.AuthPath != nil {
		updates["auth_path"] = *req.AuthPath
	}
	if req.BooksPath != nil {
		updates["books_path"] = *req.BooksPath
	}
	if req.NotesPath != nil {
		updates["notes_path"] = *req.NotesPath
	}
	if req.ShortWordCountThreshold != nil {
		updates["short_word_count_threshold"] = short
	}
	if req.MediumWordCountThreshold != nil {
		updates["medium_word_count_threshold"] = medium
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.utilityRepo.Update(ctx, tx, utilityID, updates)
	})
	if err != nil {
		return nil, fmt.Errorf("utilityService.UpdateUtility: %w", err)
	}

	// 接続設定が変わった場合は古いクライアントを使い続けないようにする
	if req.BaseURL != nil || req.AuthPath != nil || req.BooksPath != nil || req.NotesPath != nil {
		s.dispatcher.Invalidate(utilityID)
	}

	logger.Info("Utility updated", "utility_id", utilityID.String())
	return s.utilityRepo.FindByID(ctx, s.db, utilityID)
}

// RefreshCredentials は外部APIクレデンシャルを差し替え、保持中のトークンを破棄します
func (s *utilityService) RefreshCredentials(ctx context.Context, utilityID uuid.UUID, req *model.RefreshCredentialsRequest) error {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{
		"api_key":                 req.APIKey,
		"api_secret":              req.APISecret,
		"access_token":            "",
		"access_token_expires_at": nil,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.utilityRepo.Update(ctx, tx, utilityID, updates)
	})
	if err != nil {
		return fmt.Errorf("utilityService.RefreshCredentials: %w", err)
	}

	s.dispatcher.Invalidate(utilityID)

	logger.Info("Utility credentials refreshed", "utility_id", utilityID.String())
	return nil
}

func (s *utilityService) DeleteUtility(ctx context.Context, utilityID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.utilityRepo.Delete(ctx, tx, utilityID)
	})
	if err != nil {
		return fmt.Errorf("utilityService.DeleteUtility: %w", err)
	}

	s.dispatcher.Invalidate(utilityID)

	logger.Info("Utility deleted", "utility_id", utilityID.String())
	return nil
}
