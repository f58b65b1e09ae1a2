package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher はbcryptによるパスワードハッシュ化・照合を行う。
type Hasher struct {
	// cost はbcryptのコストファクター。
	cost int
}

// NewHasher はデフォルトコストのHasherを生成する。
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash は平文パスワードからダイジェストを生成する。
// 同じ平文でもソルトにより毎回異なるダイジェストになる。
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	return string(digest), nil
}

// Verify は平文パスワードとダイジェストを照合する。
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
