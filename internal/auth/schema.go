package auth

import (
	"database/sql"
	"embed"

	"github.com/ysakura/picstream/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// initSchema はマイグレーションを実行して資格情報ストアのスキーマを適用する。
// username/emailの一意性はここで定義するUNIQUE制約が保証する。
func initSchema(db *sql.DB) error {
	return migration.Run(db, migrationsFS, "migrations")
}
