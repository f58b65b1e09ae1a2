package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUserNotFound は指定されたユーザーIDが存在しない場合のエラー。
var ErrUserNotFound = errors.New("user not found")

// Client は認証サービスへのサービス間通信用HTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は認証サービスのベースURL。
	baseURL string
}

// New は新しい認証サービスクライアントを生成する。
// baseURLには認証サービスのベースURL（例: "http://auth:8081"）を指定する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Username はユーザーIDをユーザー名に解決する。
// 該当ユーザーが存在しない場合はErrUserNotFoundを返す。
func (c *Client) Username(ctx context.Context, userID string) (string, error) {
	url := fmt.Sprintf("%s/api/auth/users/%s/username", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
		}
		return string(body), nil
	case http.StatusNotFound:
		return "", ErrUserNotFound
	default:
		return "", fmt.Errorf("HTTPエラー: status=%d", resp.StatusCode)
	}
}

// ValidateToken はアクセストークンの有効性を認証サービスに問い合わせる。
// 署名鍵を共有しないサービスがトークンを検証する場合に使用する。
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	url := c.baseURL + "/api/auth/validate"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HTTPエラー: status=%d", resp.StatusCode)
	}

	var result struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
	}
	return result.Valid, nil
}
