package auth

import "errors"

// サービス境界で返す型付きエラー。HTTPステータスへの変換は
// server.goのwriteServiceErrorが一箇所で行う。
// メッセージはそのままAPIレスポンスに載るため英語の定型文とする。
var (
	// ErrUsernameTaken はユーザー名が既に使用されている場合のエラー。
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrEmailTaken はメールアドレスが既に使用されている場合のエラー。
	ErrEmailTaken = errors.New("Email already taken")
	// ErrInvalidCredentials はログイン失敗時のエラー。
	// ユーザー不在とパスワード不一致を意図的に区別しない。
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// ErrInvalidRefreshToken はリフレッシュトークンが欠落・不正・期限切れ、
	// またはサブジェクトが資格情報に解決できない場合のエラー。
	ErrInvalidRefreshToken = errors.New("Invalid or expired refresh token")
	// ErrUserNotFound は指定されたユーザーIDが存在しない場合のエラー。
	ErrUserNotFound = errors.New("User not found")
)
