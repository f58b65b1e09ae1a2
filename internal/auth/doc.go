// Package auth は認証サービスの内部実装を提供する。
//
// ユーザー登録・ログイン・トークン検証・リフレッシュ・ユーザー名解決の
// HTTPエンドポイントと、SQLiteベースの資格情報ストアを持つ。
// トークンはサーバー側に保存せず、有効性は常にタイムスタンプ比較で
// 導出する。失効リストは存在しない。
package auth
