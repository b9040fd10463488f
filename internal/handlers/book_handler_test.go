// internal/handlers/book_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_note_keep/internal/handlers"
	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
	"go_5_note_keep/internal/service/mocks"
)

func setupBookRouter(t *testing.T) (*mocks.MockBookService, *chi.Mux) {
	mockService := mocks.NewMockBookService(t)
	handler := handlers.NewBookHandler(mockService, nil)

	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Get("/api/v1/books", handler.GetBooks)
	return mockService, router
}

func TestBookHandler_GetBooks(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 自ユーティリティの書籍一覧を返す", func(t *testing.T) {
		mockService, router := setupBookRouter(t)

		books := []*model.Book{
			{BookID: uuid.New(), ExternalID: "42", Title: "Cien años de soledad", Author: "García Márquez"},
			{BookID: uuid.New(), ExternalID: "43", Title: "Rayuela", Author: "Cortázar"},
		}
		mockService.On("GetBooks", mock.Anything, userID).Return(books, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []*model.Book
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Cien años de soledad", got[0].Title)
	})

	t.Run("異常系: 認証ヘッダーなしは 403", func(t *testing.T) {
		_, router := setupBookRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("異常系: ユーザーが存在しない場合は 404", func(t *testing.T) {
		mockService, router := setupBookRouter(t)

		mockService.On("GetBooks", mock.Anything, userID).Return(nil, model.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
