package gateway

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config はゲートウェイの環境変数ベースの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8080"`
	// JWTSecret はトークン検証用の共有秘密鍵。認証サービスと同じ値を設定する。
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key"`
	// AuthServiceURL は認証サービスのベースURL。
	AuthServiceURL string `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:8081"`
	// ImageServiceURL は画像サービスのベースURL。
	ImageServiceURL string `env:"IMAGE_SERVICE_URL" envDefault:"http://localhost:8082"`
	// ActivityServiceURL はアクティビティサービスのベースURL。
	ActivityServiceURL string `env:"ACTIVITY_SERVICE_URL" envDefault:"http://localhost:8083"`
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	return cfg, nil
}
