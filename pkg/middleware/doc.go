// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// 全リクエストを審査する認証ゲート、パニックリカバリ、CORS設定など、
// ゲートウェイと認証サービスで共通して使用するミドルウェアを含む。
package middleware
