package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	authdb "github.com/ysakura/picstream/internal/auth/db"
	"github.com/ysakura/picstream/pkg/middleware"
	"github.com/ysakura/picstream/pkg/password"
	"github.com/ysakura/picstream/pkg/token"
)

// Server は認証サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はサービスの設定。
	cfg Config
	// db はSQLiteデータベース接続。
	db *sql.DB
	// service は登録・ログイン・リフレッシュのドメインロジック。
	service *Service
	// tokens はトークンの発行・検証サービス。
	tokens *token.Service
}

// NewServer は新しい認証サーバーを生成する。
// SQLiteデータベースの初期化とマイグレーション適用を行う。
func NewServer(cfg Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	codec := token.NewCodec(cfg.JWTSecret)
	tokens := token.NewService(codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	service := NewService(authdb.New(sqlDB), password.NewHasher(), tokens)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		cfg:     cfg,
		db:      sqlDB,
		service: service,
		tokens:  tokens,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.Port))
}

// setupRoutes はAPIルーティングを設定する。
// すべてのエンドポイントは認証不要（validateとrefreshはヘッダーの
// トークン自体を検査するため自己完結している）。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/auth")
	{
		api.POST("/register", s.handleRegister())
		api.POST("/login", s.handleLogin())
		api.GET("/validate", s.handleValidate())
		api.POST("/refresh", s.handleRefresh())
		api.GET("/users/:id/username", s.handleGetUsername())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "auth"})
	})
}

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	// Username は一意のユーザー名。
	Username string `json:"username" binding:"required,min=3,max=50"`
	// Email は一意のメールアドレス。
	Email string `json:"email" binding:"required,email"`
	// Password は平文パスワード。ハッシュ化して保存する。
	Password string `json:"password" binding:"required,min=8"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Username はユーザー名。
	Username string `json:"username" binding:"required"`
	// Password は平文パスワード。
	Password string `json:"password" binding:"required"`
}

// handleRegister はユーザー登録ハンドラを返す。
// 成功時は201でトークンの組とユーザーIDを返す。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		result, err := s.service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			s.writeServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// handleLogin はログインハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
			return
		}

		result, err := s.service.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			s.writeServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleValidate はトークン検証ハンドラを返す。
// 検証結果にかかわらず200で {valid: bool} を返す。
func (s *Server) handleValidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		valid := false
		if raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
			_, err := s.tokens.Verify(raw)
			valid = err == nil
		}
		c.JSON(http.StatusOK, gin.H{"valid": valid})
	}
}

// handleRefresh はトークンリフレッシュハンドラを返す。
// Authorizationヘッダーで提示されたリフレッシュトークンを検証し、
// 新しいアクセス・リフレッシュトークンの組を発行する。
func (s *Server) handleRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			writeError(c, http.StatusUnauthorized, "Refresh token is missing")
			return
		}

		result, err := s.service.Refresh(c.Request.Context(), raw)
		if err != nil {
			s.writeServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleGetUsername はユーザーIDからユーザー名を解決するハンドラを返す。
func (s *Server) handleGetUsername() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(c, http.StatusNotFound, ErrUserNotFound.Error()+": "+id)
			return
		}

		username, err := s.service.LookupUsername(c.Request.Context(), id)
		if err != nil {
			s.writeServiceError(c, err)
			return
		}

		c.String(http.StatusOK, username)
	}
}

// errorResponse はAPIエラーの構造化ボディ。
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// writeError は構造化エラーボディを書き込む。
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// writeServiceError はサービス層の型付きエラーをHTTPステータスに変換する。
// 変換はこの一箇所でのみ行い、未分類のエラーは内部情報を漏らさず
// 定型メッセージの500に落とす。リトライは行わない。
func (s *Server) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidRefreshToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("認証サービスエラー: path=%s, error=%v", c.Request.URL.Path, err)
		writeError(c, http.StatusInternalServerError, "Internal server error")
	}
}
