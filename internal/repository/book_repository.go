//go:generate mockery --name BookRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, book *model.Book) error
	FindByExternalID(ctx context.Context, db *gorm.DB, utilityID uuid.UUID, externalID string) (*model.Book, error)
	FindByTitle(ctx context.Context, db *gorm.DB, utilityID uuid.UUID, title string) (*model.Book, error)
	FindByUtility(ctx context.Context, db *gorm.DB, utilityID uuid.UUID) ([]*model.Book, error)
}

type gormBookRepository struct{}

func NewGormBookRepository() BookRepository {
	return &gormBookRepository{}
}

// Upsert は外部IDをキーに書籍を作成または更新します。
// 同期は何度でも再実行されるため、重複はエラーではなく上書きにする。
func (r *gormBookRepository) Upsert(ctx context.Context, tx *gorm.DB, book *model.Book) error {
	logger := middleware.GetLogger(ctx)

	existing, err := r.FindByExternalID(ctx, tx, book.UtilityID, book.ExternalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			if err := tx.WithContext(ctx).Create(book).Error; err != nil {
				logger.Error("Error creating book in DB",
					"error", err,
					"utility_id", book.UtilityID.String(),
					"external_id", book.ExternalID,
				)
				return fmt.Errorf("gormBookRepository.Upsert create: %w", err)
			}
			return nil
		}
		logger.Error("Error looking up book for upsert in DB",
			"error", err,
			"utility_id", book.UtilityID.String(),
			"external_id", book.ExternalID,
		)
		return fmt.Errorf("gormBookRepository.Upsert lookup: %w", err)
	}

	updates := map[string]interface{}{
		"title":     book.Title,
		"author":    book.Author,
		"genre":     book.Genre,
		"image_url": book.ImageURL,
		"publisher": book.Publisher,
		"year":      book.Year,
	}
	if err := tx.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		logger.Error("Error updating book in DB",
			"error", err,
			"utility_id", book.UtilityID.String(),
			"external_id", book.ExternalID,
		)
		return fmt.Errorf("gormBookRepository.Upsert update: %w", err)
	}
	book.BookID = existing.BookID
	return nil
}

func (r *gormBookRepository) FindByExternalID(ctx context.Context, db *gorm.DB, utilityID uuid.UUID, externalID string) (*model.Book, error) {
	var book model.Book
	result := db.WithContext(ctx).
		Where("utility_id = ? AND external_id = ?", utilityID, externalID).
		First(&book)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBookRepository.FindByExternalID: %w", result.Error)
	}
	return &book, nil
}

func (r *gormBookRepository) FindByTitle(ctx context.Context, db *gorm.DB, utilityID uuid.UUID, title string) (*model.Book, error) {
	var book model.Book
	result := db.WithContext(ctx).
		Where("utility_id = ? AND title = ?", utilityID, title).
		First(&book)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBookRepository.FindByTitle: %w", result.Error)
	}
	return &book, nil
}

func (r *gormBookRepository) FindByUtility(ctx context.Context, db *gorm.DB, utilityID uuid.UUID) ([]*model.Book, error) {
	logger := middleware.GetLogger(ctx)
	var books []*model.Book
	result := db.WithContext(ctx).Where("utility_id = ?", utilityID).Order("title ASC").Find(&books)
	if result.Error != nil {
		logger.Error("Error finding books by utility in DB",
			"error", result.Error,
			"utility_id", utilityID.String(),
		)
		return nil, fmt.Errorf("gormBookRepository.FindByUtility: %w", result.Error)
	}
	return books, nil
}
