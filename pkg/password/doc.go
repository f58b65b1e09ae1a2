// Package password はパスワードのハッシュ化と照合を提供する。
//
// bcryptによる一方向ハッシュを使用し、平文パスワードは保存しない。
// 認証サービスが登録時のハッシュ化とログイン時の照合に使用する。
package password
