// internal/service/note_service.go
package service

import (
	"context"
	"fmt"

	"go_5_note_keep/internal/config"
	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name NoteService --output ./mocks --outpkg mocks --case=underscore
type NoteService interface {
	PostNote(ctx context.Context, userID uuid.UUID, req *model.PostNoteRequest) (*model.Note, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error)
	GetNotes(ctx context.Context, userID uuid.UUID, query *model.ListNotesQuery) ([]*model.Note, error)
}

type noteService struct {
	db          *gorm.DB
	cfg         *config.Config
	noteRepo    repository.NoteRepository
	userRepo    repository.UserRepository
	utilityRepo repository.UtilityRepository
	validator   NoteValidator
}

func NewNoteService(
	db *gorm.DB,
	cfg *config.Config,
	noteRepo repository.NoteRepository,
	userRepo repository.UserRepository,
	utilityRepo repository.UtilityRepository,
	validator NoteValidator,
) NoteService {
	return &noteService{
		db:          db,
		cfg:         cfg,
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		utilityRepo: utilityRepo,
		validator:   validator,
	}
}

// PostNote はノート候補を検証パイプラインに通し、通過した場合のみ保存します。
func (s *noteService) PostNote(ctx context.Context, userID uuid.UUID, req *model.PostNoteRequest) (*model.Note, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	utility, err := s.utilityRepo.FindByID(ctx, s.db, user.UtilityID)
	if err != nil {
		logger.Error("Error finding utility for note author",
			"error", err,
			"user_id", userID.String(),
			"utility_id", user.UtilityID.String(),
		)
		return nil, err
	}

	note, err := s.validator.Validate(ctx, &model.NoteCandidate{
		Title:    req.Title,
		Content:  req.Content,
		NoteType: req.Type,
		Utility:  utility,
		User:     user,
	})
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.noteRepo.Create(ctx, tx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("noteService.PostNote: %w", err)
	}

	logger.Info("Note created",
		"note_id", note.NoteID.String(),
		"user_id", userID.String(),
		"note_type", string(note.NoteType),
		"content_length", string(note.ContentLength),
	)
	return note, nil
}

// GetNote は1件取得。導出属性は保存していないため読み出し時に再計算する。
func (s *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, s.db, userID, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.applyOwnerPolicy(ctx, userID, []*model.Note{note}); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) GetNotes(ctx context.Context, userID uuid.UUID, query *model.ListNotesQuery) ([]*model.Note, error) {
	if query.PageSize <= 0 {
		query.PageSize = s.cfg.App.DefaultPageSize
	}
	if query.PageSize > s.cfg.App.MaxPageSize {
		query.PageSize = s.cfg.App.MaxPageSize
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	notes, err := s.noteRepo.FindByUser(ctx, s.db, userID, query)
	if err != nil {
		return nil, err
	}
	if err := s.applyOwnerPolicy(ctx, userID, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// applyOwnerPolicy は所有者のユーティリティのポリシーで導出属性を再計算します
func (s *noteService) applyOwnerPolicy(ctx context.Context, userID uuid.UUID, notes []*model.Note) error {
	if len(notes) == 0 {
		return nil
	}
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	utility, err := s.utilityRepo.FindByID(ctx, s.db, user.UtilityID)
	if err != nil {
		return err
	}
	policy, err := utility.Policy()
	if err != nil {
		return err
	}
	for _, note := range notes {
		note.ApplyPolicy(policy)
	}
	return nil
}
