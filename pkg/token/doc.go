// Package token は識別トークンの署名・検証と発行ポリシーを提供する。
//
// トークンはHS256で署名されたコンパクト形式のJWTであり、サブジェクト
// （ユーザー名）、ユーザーID、発行時刻、有効期限をクレームとして持つ。
// アクセストークンとリフレッシュトークンは構造上同一で、有効期限の
// ポリシーのみが異なる。署名鍵はプロセス起動時に一度だけ設定され、
// 以降変更されない。
package token
