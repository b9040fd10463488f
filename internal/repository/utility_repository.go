//go:generate mockery --name UtilityRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UtilityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, utility *model.Utility) error
	FindByID(ctx context.Context, db *gorm.DB, utilityID uuid.UUID) (*model.Utility, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Utility, error)
	Update(ctx context.Context, tx *gorm.DB, utilityID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, utilityID uuid.UUID) error
}

type gormUtilityRepository struct{}

func NewGormUtilityRepository() UtilityRepository {
	return &gormUtilityRepository{}
}

func (r *gormUtilityRepository) Create(ctx context.Context, tx *gorm.DB, utility *model.Utility) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(utility)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create utility",
				"error", result.Error,
				"utility_name", utility.Name,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating utility in DB",
			"error", result.Error,
			"utility_name", utility.Name,
		)
		return fmt.Errorf("gormUtilityRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUtilityRepository) FindByID(ctx context.Context, db *gorm.DB, utilityID uuid.UUID) (*model.Utility, error) {
	logger := middleware.GetLogger(ctx)
	var utility model.Utility
	result := db.WithContext(ctx).Where("utility_id = ?", utilityID).First(&utility)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding utility by ID in DB",
			"error", result.Error,
			"utility_id", utilityID.String(),
		)
		return nil, fmt.Errorf("gormUtilityRepository.FindByID: %w", result.Error)
	}
	return &utility, nil
}

func (r *gormUtilityRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Utility, error) {
	logger := middleware.GetLogger(ctx)
	var utility model.Utility
	result := db.WithContext(ctx).Where("name = ?", name).First(&utility)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding utility by name in DB",
			"error", result.Error,
			"utility_name", name,
		)
		return nil, fmt.Errorf("gormUtilityRepository.FindByName: %w", result.Error)
	}
	return &utility, nil
}

func (r *gormUtilityRepository) Update(ctx context.Context, tx *gorm.DB, utilityID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Utility{}).Where("utility_id = ?", utilityID).Updates(updates)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error updating utility in DB",
			"error", result.Error,
			"utility_id", utilityID.String(),
		)
		return fmt.Errorf("gormUtilityRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はユーティリティを論理削除します。所有するユーザー・ノート・書籍も
// 同一トランザクション内で削除する (カスケード)。
func (r *gormUtilityRepository) Delete(ctx context.Context, tx *gorm.DB, utilityID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if err := tx.WithContext(ctx).Where("utility_id = ?", utilityID).Delete(&model.Note{}).Error; err != nil {
		logger.Error("Error deleting notes for utility in DB", "error", err, "utility_id", utilityID.String())
		return fmt.Errorf("gormUtilityRepository.Delete notes: %w", err)
	}
	if err := tx.WithContext(ctx).Where("utility_id = ?", utilityID).Delete(&model.Book{}).Error; err != nil {
		logger.Error("Error deleting books for utility in DB", "error", err, "utility_id", utilityID.String())
		return fmt.Errorf("gormUtilityRepository.Delete books: %w", err)
	}
	if err := tx.WithContext(ctx).Where("utility_id = ?", utilityID).Delete(&model.User{}).Error; err != nil {
		logger.Error("Error deleting users for utility in DB", "error", err, "utility_id", utilityID.String())
		return fmt.Errorf("gormUtilityRepository.Delete users: %w", err)
	}

	result := tx.WithContext(ctx).Where("utility_id = ?", utilityID).Delete(&model.Utility{})
	if result.Error != nil {
		logger.Error("Error deleting utility in DB",
			"error", result.Error,
			"utility_id", utilityID.String(),
		)
		return fmt.Errorf("gormUtilityRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
