package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 検証失敗の分類。署名検証が先、有効期限チェックが後。
var (
	// ErrMalformed はトークンが構造的に不正な場合のエラー。
	ErrMalformed = errors.New("token is malformed")
	// ErrExpired は署名は正しいが有効期限が過ぎている場合のエラー。
	ErrExpired = errors.New("token is expired")
	// ErrSignatureMismatch は署名検証に失敗した場合のエラー。
	ErrSignatureMismatch = errors.New("token signature mismatch")
)

// Claims はトークンの署名対象ペイロードを表す。
type Claims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子（UUID文字列）。
	UserID string `json:"userId"`
}

// Codec はトークンの署名と検証を行う。
// 署名鍵は生成時に固定され、以降共有読み取り専用となるため
// 並行利用にロックは不要。
type Codec struct {
	// secret はHMAC署名用の共有秘密鍵。
	secret []byte
	// now は現在時刻を返す関数。テストで差し替える。
	now func() time.Time
}

// Option はCodecの生成オプション。
type Option func(*Codec)

// WithClock は現在時刻の取得関数を差し替える。
// 有効期限まわりのテストで使用する。
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec は指定された署名鍵でトークンコーデックを生成する。
func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign はサブジェクトとユーザーIDを持つトークンを発行する。
// クレームは {sub, userId, iat, exp} で、expはnow+ttl。
func (c *Codec) Sign(subject, userID string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証してクレームを返す。
// 署名検証を先に行い、その後に有効期限を確認する。期限は厳密な
// exp <= now 境界で、クロックスキューの猶予は設けない。
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
	)

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrSignatureMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	default:
		return nil, ErrMalformed
	}
}
