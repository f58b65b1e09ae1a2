// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// 外部からアクセス可能な唯一のサービスであり、セキュリティの境界線となる。
// 全リクエストを認証ゲートで審査し、検証済みユーザーIDをX-User-Id
// ヘッダーとして注入した上で、パス接頭辞ベースのルーティング規則に
// 従って内部サービスへ転送する。マルチパートの書き込みリクエストは
// ボディをメモリに載せずストリーミングで中継する。
package gateway
