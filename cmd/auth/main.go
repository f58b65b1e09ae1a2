// 認証サービスのエントリポイント。
// ユーザー登録・ログイン・トークン検証・リフレッシュ・ユーザー名解決を
// 担当する。資格情報はSQLiteに保存し、トークンはサーバー側に保存しない。
package main

import (
	"log"

	"github.com/ysakura/picstream/internal/auth"
)

func main() {
	cfg, err := auth.LoadConfig()
	if err != nil {
		log.Fatalf("認証サービス設定の読み込みに失敗: %v", err)
	}

	server, err := auth.NewServer(cfg)
	if err != nil {
		log.Fatalf("認証サーバーの初期化に失敗: %v", err)
	}

	log.Printf("認証サービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("認証サービスの起動に失敗: %v", err)
	}
}
