package auth

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config は認証サービスの環境変数ベースの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8081"`
	// JWTSecret はトークン署名用の共有秘密鍵。
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key"`
	// AccessTokenTTL はアクセストークンの有効期間。
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	// RefreshTokenTTL はリフレッシュトークンの有効期間。
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	// DBPath はSQLiteデータベースの接続文字列。
	DBPath string `env:"AUTH_DB_PATH" envDefault:"/data/auth.db?_journal_mode=WAL&_busy_timeout=5000"`
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	return cfg, nil
}
