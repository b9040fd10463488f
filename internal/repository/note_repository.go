//go:generate mockery --name NoteRepository --output ./mocks --outpkg mocks --case=underscore
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

type NoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, note *model.Note) error
	FindByID(ctx context.Context, db *gorm.DB, userID, noteID uuid.UUID) (*model.Note, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, query *model.ListNotesQuery) ([]*model.Note, error)
}

type gormNoteRepository struct{}

func NewGormNoteRepository() NoteRepository {
	return &gormNoteRepository{}
}

func (r *gormNoteRepository) Create(ctx context.Context, tx *gorm.DB, note *model.Note) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(note)
	if result.Error != nil {
		logger.Error("Error creating note in DB",
			"error", result.Error,
			"utility_id", note.UtilityID.String(),
			"user_id", note.UserID.String(),
		)
		return fmt.Errorf("gormNoteRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormNoteRepository) FindByID(ctx context.Context, db *gorm.DB, userID, noteID uuid.UUID) (*model.Note, error) {
	logger := middleware.GetLogger(ctx)
	var note model.Note
	result := db.WithContext(ctx).Where("user_id = ? AND note_id = ?", userID, noteID).First(&note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding note by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"note_id", noteID.String(),
		)
		return nil, fmt.Errorf("gormNoteRepository.FindByID: %w", result.Error)
	}
	return &note, nil
}

func (r *gormNoteRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, query *model.ListNotesQuery) ([]*model.Note, error) {
	logger := middleware.GetLogger(ctx)
	var notes []*model.Note

	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if query.NoteType != "" {
		q = q.Where("note_type = ?", query.NoteType)
	}
	if query.Order == "asc" {
		q = q.Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}
	if query.PageSize > 0 {
		offset := 0
		if query.Page > 1 {
			offset = (query.Page - 1) * query.PageSize
		}
		q = q.Limit(query.PageSize).Offset(offset)
	}

	result := q.Find(&notes)
	if result.Error != nil {
		logger.Error("Error finding notes by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormNoteRepository.FindByUser: %w", result.Error)
	}
	return notes, nil
}
