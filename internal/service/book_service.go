// internal/service/book_service.go
package service

import (
	"context"

	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookService は取込済み書籍カタログの参照を提供します。
// 書籍は同期でのみ作成されるため、ここは読み取り専用。
//
//go:generate mockery --name BookService --output ./mocks --outpkg mocks --case=underscore
type BookService interface {
	GetBooks(ctx context.Context, userID uuid.UUID) ([]*model.Book, error)
}

type bookService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
}

func NewBookService(db *gorm.DB, userRepo repository.UserRepository, bookRepo repository.BookRepository) BookService {
	return &bookService{
		db:       db,
		userRepo: userRepo,
		bookRepo: bookRepo,
	}
}

// GetBooks はユーザーが属するユーティリティの書籍一覧を返します
func (s *bookService) GetBooks(ctx context.Context, userID uuid.UUID) ([]*model.Book, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.bookRepo.FindByUtility(ctx, s.db, user.UtilityID)
}
