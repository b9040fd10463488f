// internal/integration/client_test.go
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_5_note_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_FetchBooks(t *testing.T) {
	t.Run("正常系: トークン取得してから書籍を取得する (north)", func(t *testing.T) {
		var authCalls int

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/oauth/token":
				authCalls++
				require.Equal(t, http.MethodPost, r.Method)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "test-key", body["client_key"])
				assert.Equal(t, "test-secret", body["client_secret"])

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token": "token-abc",
					"expires_in":   3600,
				})
			case "/books":
				assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"Books": []}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		utility := &model.Utility{
			UtilityID: uuid.New(),
			Kind:      model.UtilityKindNorth,
			BaseURL:   server.URL,
			APIKey:    "test-key",
			APISecret: "test-secret",
			AuthPath:  "/oauth/token",
			BooksPath: "/books",
		}
		client := newHTTPClient(utility, northAuthProfile{})

		payload, err := client.FetchBooks(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"Books": []}`, string(payload))
		assert.Equal(t, 1, authCalls)

		// 2回目はキャッシュ済みトークンを使うので認証は増えない
		_, err = client.FetchBooks(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, authCalls)
	})

	t.Run("正常系: south はスペイン語の認証レスポンスを読む", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth":
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "clave-sur", body["clave"])
				assert.Equal(t, "secreto-sur", body["secreto"])

				json.NewEncoder(w).Encode(map[string]interface{}{
					"token":     "token-sur",
					"expira_en": 1800,
				})
			case "/notas":
				assert.Equal(t, "Bearer token-sur", r.Header.Get("Authorization"))
				w.Write([]byte(`{"Notas": []}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		utility := &model.Utility{
			UtilityID: uuid.New(),
			Kind:      model.UtilityKindSouth,
			BaseURL:   server.URL,
			APIKey:    "clave-sur",
			APISecret: "secreto-sur",
			AuthPath:  "/auth",
			NotesPath: "/notas",
		}
		client := newHTTPClient(utility, southAuthProfile{})

		payload, err := client.FetchNotes(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"Notas": []}`, string(payload))
	})

	t.Run("異常系: 認証レスポンスにトークンがない場合は形状エラー", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"mensaje": "ok"}`))
		}))
		defer server.Close()

		utility := &model.Utility{
			UtilityID: uuid.New(),
			Kind:      model.UtilityKindSouth,
			BaseURL:   server.URL,
			APIKey:    "k",
			APISecret: "s",
			AuthPath:  "/auth",
			BooksPath: "/libros",
		}
		client := newHTTPClient(utility, southAuthProfile{})

		_, err := client.FetchBooks(context.Background())
		require.Error(t, err)

		var shapeErr *model.UnsupportedPayloadShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "token", shapeErr.MissingKey)
	})

	t.Run("異常系: 外部APIの非200応答は ErrUtilityUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth" {
				json.NewEncoder(w).Encode(map[string]interface{}{"token": "t", "expira_en": 60})
				return
			}
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		utility := &model.Utility{
			UtilityID: uuid.New(),
			Kind:      model.UtilityKindSouth,
			BaseURL:   server.URL,
			APIKey:    "k",
			APISecret: "s",
			AuthPath:  "/auth",
			BooksPath: "/libros",
		}
		client := newHTTPClient(utility, southAuthProfile{})

		_, err := client.FetchBooks(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUtilityUnavailable)
	})
}
