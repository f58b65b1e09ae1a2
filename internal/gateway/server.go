package gateway

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ysakura/picstream/pkg/middleware"
	"github.com/ysakura/picstream/pkg/token"
)

// publicPathPrefixes は認証不要で通過させるパスの接頭辞。
// 登録・ログイン・トークン検証・リフレッシュ・ユーザー名解決・
// ヘルスチェックが該当する。
var publicPathPrefixes = []string{
	"/api/auth/",
	"/health",
}

// Server はAPI GatewayサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はサービスの設定。
	cfg Config
	// routes は起動時に構築する順序付きルーティング規則。
	routes RouteTable
	// client は通常の転送に使用するHTTPクライアント。
	client *http.Client
	// streamClient はストリーミング転送用のHTTPクライアント。
	// 大きなアップロードを打ち切らないようタイムアウトを設定しない。
	streamClient *http.Client
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))

	// 認証ゲートは宛先解決より前に全リクエストを審査する
	codec := token.NewCodec(cfg.JWTSecret)
	router.Use(middleware.AuthGate(codec, publicPathPrefixes))

	s := &Server{
		router: router,
		cfg:    cfg,
		routes: buildRoutes(cfg),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		streamClient: &http.Client{},
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.Port))
}

// setupRoutes はルーティングを設定する。
// ヘルスチェック以外のすべてのパスはルーティング規則に従って
// 内部サービスへ転送する。
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})

	s.router.NoRoute(s.handleForward())
}

// handleForward はルーティング規則に従ってリクエストを転送するハンドラを返す。
// マルチパートの書き込みリクエストのみストリーミング転送に切り替える。
func (s *Server) handleForward() gin.HandlerFunc {
	return func(c *gin.Context) {
		upstream, ok := s.routes.Resolve(c.Request.URL.Path)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "ルーティング規則に一致しません"})
			return
		}

		if isMultipartRequest(c.Request) {
			s.streamForward(c, upstream)
			return
		}
		s.forward(c, upstream)
	}
}

// forward はリクエストを内部サービスに転送する通常のプロキシ処理。
// AuthorizationとゲートがセットしたX-User-Idヘッダーを引き継ぐ。
func (s *Server) forward(c *gin.Context, upstream string) {
	url := upstream + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "プロキシリクエストの作成に失敗しました"})
		return
	}

	req.Header.Set("Content-Type", c.GetHeader("Content-Type"))
	req.Header.Set("Authorization", c.GetHeader("Authorization"))
	req.Header.Set(middleware.HeaderUserID, c.GetHeader(middleware.HeaderUserID))

	resp, err := s.client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "内部サービスとの通信に失敗しました"})
		log.Printf("プロキシエラー: url=%s, error=%v", url, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "レスポンスの読み取りに失敗しました"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, body)
}
