// Package authclient は認証サービスへのHTTPクライアントを提供する。
//
// ゲートウェイが注入するX-User-Idヘッダーの値を表示名（ユーザー名）へ
// 解決するために、画像サービスやアクティビティサービスなどの
// 下流サービスが使用する。
package authclient
