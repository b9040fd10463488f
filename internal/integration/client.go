// internal/integration/client.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go_5_note_keep/internal/middleware"
	"go_5_note_keep/internal/model"
)

// ParamValidator は外部API呼び出し前のユーティリティ設定チェック。
// 不足があれば MissingFieldsError を返し、外部呼び出しは行わない。
type ParamValidator interface {
	ValidateSync(u *model.Utility) error
}

// Client はユーティリティの外部APIからデータを取得するクライアント。
// 認証トークンの取得・キャッシュは実装側で面倒を見る。
type Client interface {
	FetchBooks(ctx context.Context) ([]byte, error)
	FetchNotes(ctx context.Context) ([]byte, error)
}

// authProfile は種別ごとのトークン取得リクエスト/レスポンスの形を吸収する
type authProfile interface {
	authBody(apiKey, apiSecret string) interface{}
	parseAuth(body []byte) (string, int, error)
}

// httpClient は種別非依存のHTTPクライアント実装。
// 種別ごとの差分 (認証ボディの形、レスポンスの形) は authProfile に委譲する。
type httpClient struct {
	utility *model.Utility
	profile authProfile
	http    *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

const defaultRequestTimeout = 30 * time.Second

func newHTTPClient(utility *model.Utility, profile authProfile) *httpClient {
	c := &httpClient{
		utility: utility,
		profile: profile,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
	// 永続化済みトークンがあれば初期値として引き継ぐ
	if utility.AccessToken != "" && utility.AccessTokenExpiresAt != nil {
		c.accessToken = utility.AccessToken
		c.expiresAt = *utility.AccessTokenExpiresAt
	}
	return c
}

func (c *httpClient) FetchBooks(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, c.utility.BooksPath)
}

func (c *httpClient) FetchNotes(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, c.utility.NotesPath)
}

func (c *httpClient) fetch(ctx context.Context, path string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(c.utility.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.fetch: invalid endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("httpClient.fetch: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("External API request failed",
			"error", err,
			"utility_id", c.utility.UtilityID.String(),
			"endpoint", endpoint,
		)
		return nil, fmt.Errorf("%w: httpClient.fetch: %s", model.ErrUtilityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("External API returned non-OK status",
			"status", resp.StatusCode,
			"utility_id", c.utility.UtilityID.String(),
			"endpoint", endpoint,
		)
		return nil, fmt.Errorf("%w: httpClient.fetch: status %d", model.ErrUtilityUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: httpClient.fetch: read body: %s", model.ErrUtilityUnavailable, err)
	}
	return body, nil
}

// token は有効なアクセストークンを返します。期限切れなら再取得。
func (c *httpClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	logger := middleware.GetLogger(ctx)

	endpoint, err := url.JoinPath(c.utility.BaseURL, c.utility.AuthPath)
	if err != nil {
		return "", fmt.Errorf("httpClient.token: invalid endpoint: %w", err)
	}

	payload, err := json.Marshal(c.profile.authBody(c.utility.APIKey, c.utility.APISecret))
	if err != nil {
		return "", fmt.Errorf("httpClient.token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("httpClient.token: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("External API auth request failed",
			"error", err,
			"utility_id", c.utility.UtilityID.String(),
		)
		return "", fmt.Errorf("%w: httpClient.token: %s", model.ErrUtilityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("External API auth returned non-OK status",
			"status", resp.StatusCode,
			"utility_id", c.utility.UtilityID.String(),
		)
		return "", fmt.Errorf("%w: httpClient.token: status %d", model.ErrUtilityUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: httpClient.token: read body: %s", model.ErrUtilityUnavailable, err)
	}

	token, expiresIn, err := c.profile.parseAuth(body)
	if err != nil {
		return "", err
	}

	c.accessToken = token
	if expiresIn > 0 {
		// 期限ぎりぎりでの失効を避けるため少し手前で切る
		c.expiresAt = time.Now().Add(time.Duration(expiresIn)*time.Second - 30*time.Second)
	} else {
		c.expiresAt = time.Now().Add(55 * time.Minute)
	}

	logger.Info("Obtained external API access token",
		"utility_id", c.utility.UtilityID.String(),
		"expires_at", c.expiresAt,
	)
	return c.accessToken, nil
}
