package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ysakura/picstream/pkg/token"
)

// HeaderUserID は検証済みユーザーIDを下流サービスへ伝播するHTTPヘッダーキー。
const HeaderUserID = "X-User-Id"

// contextKeyUserID はGinコンテキストにユーザーIDを格納するキー。
const contextKeyUserID = "user_id"

// rejectionResponse は認証拒否時の構造化エラーボディ。
type rejectionResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// AuthGate は全リクエストを1ステップで審査するGinミドルウェアを返す。
//
// パスがpublicPrefixesのいずれかに前方一致する場合はリクエストを
// 変更せず通過させる。それ以外はBearerトークンの検証を行い、成功時は
// 検証済みユーザーIDでX-User-Idヘッダーを書き換えて転送し、失敗時は
// 401で打ち切る。宛先解決より前に実行されることを前提とし、副作用は
// ヘッダー書き換えのみで同じトークンに対して常に同じ結果を返す。
func AuthGate(codec *token.Codec, publicPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, "Authorization header is missing")
			return
		}

		raw, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			reject(c, "Bearer token format is invalid")
			return
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			reject(c, "Token is invalid or expired")
			return
		}

		// 外部から渡されたX-User-Idは信用せず、検証済みの値で上書きする。
		// 元のAuthorizationヘッダーは保持したまま転送する。
		c.Request.Header.Set(HeaderUserID, claims.UserID)
		c.Set(contextKeyUserID, claims.UserID)
		c.Next()
	}
}

// reject は401の構造化エラーボディを書き込みリクエストを打ち切る。
// 拒否されたリクエストがバックエンドに転送されることはない。
func reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, rejectionResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusUnauthorized,
		Error:     http.StatusText(http.StatusUnauthorized),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// GetUserID はGinコンテキストから検証済みユーザーIDを取得する。
// AuthGateミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(contextKeyUserID)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
