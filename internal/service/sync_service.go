// internal/service/sync_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go_5_note_keep/internal/integration"
	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncService は外部APIからの書籍・ノートの取込を実行します。
// 取込はユーティリティ単位で、種別ごとの差分は Dispatcher が解決する。
//
//go:generate mockery --name SyncService --output ./mocks --outpkg mocks --case=underscore
type SyncService interface {
	SyncBooks(ctx context.Context, utilityID uuid.UUID) (*model.SyncResult, error)
	SyncNotes(ctx context.Context, utilityID uuid.UUID) (*model.SyncResult, error)
}

// IntegrationResolver はユーティリティから連携部品一式を解決します。
// 本番では *integration.Dispatcher がこれを満たす。
type IntegrationResolver interface {
	Resolve(utility *model.Utility) (integration.Resolved, error)
}

type syncService struct {
	db          *gorm.DB
	utilityRepo repository.UtilityRepository
	userRepo    repository.UserRepository
	bookRepo    repository.BookRepository
	noteRepo    repository.NoteRepository
	validator   NoteValidator
	dispatcher  IntegrationResolver
}

func NewSyncService(
	db *gorm.DB,
	utilityRepo repository.UtilityRepository,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	noteRepo repository.NoteRepository,
	validator NoteValidator,
	dispatcher IntegrationResolver,
) SyncService {
	return &syncService{
		db:          db,
		utilityRepo: utilityRepo,
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		noteRepo:    noteRepo,
		validator:   validator,
		dispatcher:  dispatcher,
	}
}

// resolve はユーティリティを読み込み、連携部品の解決と設定チェックまで行います。
// ここで失敗した場合、外部APIへのリクエストは一度も発生しない。
func (s *syncService) resolve(ctx context.Context, utilityID uuid.UUID) (*model.Utility, integration.Resolved, error) {
	utility, err := s.utilityRepo.FindByID(ctx, s.db, utilityID)
	if err != nil {
		return nil, integration.Resolved{}, err
	}
	resolved, err := s.dispatcher.Resolve(utility)
	if err != nil {
		return nil, integration.Resolved{}, err
	}
	if err := resolved.Params.ValidateSync(utility); err != nil {
		return nil, integration.Resolved{}, err
	}
	return utility, resolved, nil
}

// SyncBooks は書籍カタログを取り込みます。外部IDをキーに upsert するため
// 再実行しても重複しない。
func (s *syncService) SyncBooks(ctx context.Context, utilityID uuid.UUID) (*model.SyncResult, error) {
	logger := middleware.GetLogger(ctx)

	utility, resolved, err := s.resolve(ctx, utilityID)
	if err != nil {
		return nil, err
	}

	payload, err := resolved.Client.FetchBooks(ctx)
	if err != nil {
		return nil, err
	}

	imports, skipped, err := resolved.Mapper.MapBooks(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &model.SyncResult{Skipped: skipped}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, imp := range imports {
			book := &model.Book{
				BookID:     uuid.New(),
				UtilityID:  utility.UtilityID,
				ExternalID: imp.ExternalID,
				Title:      imp.Title,
				Author:     imp.Author,
				Genre:      imp.Genre,
				ImageURL:   imp.ImageURL,
				Publisher:  imp.Publisher,
				Year:       imp.Year,
			}
			if err := s.bookRepo.Upsert(ctx, tx, book); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("syncService.SyncBooks: %w", err)
	}

	logger.Info("Book sync completed",
		"utility_id", utilityID.String(),
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

// SyncNotes はノートを取り込みます。著者ユーザーはメールアドレスで
// find-or-create し、取り込んだノートも通常の検証パイプラインを通す。
// 検証に落ちたノートはスキップ件数に加算して処理を続ける。
func (s *syncService) SyncNotes(ctx context.Context, utilityID uuid.UUID) (*model.SyncResult, error) {
	logger := middleware.GetLogger(ctx)

	utility, resolved, err := s.resolve(ctx, utilityID)
	if err != nil {
		return nil, err
	}

	payload, err := resolved.Client.FetchNotes(ctx)
	if err != nil {
		return nil, err
	}

	imports, skipped, err := resolved.Mapper.MapNotes(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &model.SyncResult{Skipped: skipped}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, imp := range imports {
			user, err := s.findOrCreateAuthor(ctx, tx, utility.UtilityID, imp.User)
			if err != nil {
				return err
			}

			note, err := s.validator.Validate(ctx, &model.NoteCandidate{
				Title:    imp.Title,
				Content:  imp.Content,
				NoteType: string(imp.NoteType),
				Utility:  utility,
				User:     user,
			})
			if err != nil {
				// 検証エラーはそのレコードだけスキップ。それ以外は取込全体を失敗させる。
				if errors.Is(err, model.ErrInvalidInput) || errors.Is(err, model.ErrUnprocessable) {
					logger.Warn("Skipping imported note failing validation",
						"index", i,
						"error", err,
						"utility_id", utilityID.String(),
					)
					result.Skipped++
					continue
				}
				return err
			}

			if !imp.CreatedAt.IsZero() {
				note.CreatedAt = imp.CreatedAt
			}
			if imp.Book.Title != "" {
				book, err := s.bookRepo.FindByTitle(ctx, tx, utility.UtilityID, imp.Book.Title)
				if err == nil {
					note.BookID = &book.BookID
				} else if !errors.Is(err, model.ErrNotFound) {
					return err
				}
			}

			if err := s.noteRepo.Create(ctx, tx, note); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("syncService.SyncNotes: %w", err)
	}

	logger.Info("Note sync completed",
		"utility_id", utilityID.String(),
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

// findOrCreateAuthor は取込ノートの著者を解決します。
// 新規作成されるユーザーはパスワードを持たない (ログイン不可)。
func (s *syncService) findOrCreateAuthor(ctx context.Context, tx *gorm.DB, utilityID uuid.UUID, imp model.UserImport) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, tx, utilityID, imp.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	user = &model.User{
		UserID:    uuid.New(),
		UtilityID: utilityID,
		Email:     imp.Email,
		FirstName: imp.FirstName,
		LastName:  imp.LastName,
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, err
	}
	return user, nil
}
