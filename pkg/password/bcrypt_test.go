package password

import (
	"strings"
	"testing"
)

// TestHasher はハッシュ化と照合を検証する。
func TestHasher(t *testing.T) {
	t.Parallel()

	t.Run("ハッシュ化したパスワードを正しく照合できること", func(t *testing.T) {
		t.Parallel()

		h := NewHasher()
		digest, err := h.Hash("correct horse battery")
		if err != nil {
			t.Fatalf("Hash()でエラーが発生: %v", err)
		}
		if !h.Verify("correct horse battery", digest) {
			t.Error("正しいパスワードの照合に失敗")
		}
	})

	t.Run("異なるパスワードは照合に失敗すること", func(t *testing.T) {
		t.Parallel()

		h := NewHasher()
		digest, err := h.Hash("password-one")
		if err != nil {
			t.Fatalf("Hash()でエラーが発生: %v", err)
		}
		if h.Verify("password-two", digest) {
			t.Error("異なるパスワードの照合が成功してしまった")
		}
	})

	t.Run("ダイジェストに平文が含まれないこと", func(t *testing.T) {
		t.Parallel()

		h := NewHasher()
		digest, err := h.Hash("secret-plain-text")
		if err != nil {
			t.Fatalf("Hash()でエラーが発生: %v", err)
		}
		if strings.Contains(digest, "secret-plain-text") {
			t.Error("ダイジェストに平文が含まれている")
		}
	})

	t.Run("同じ平文でもソルトによりダイジェストが毎回異なること", func(t *testing.T) {
		t.Parallel()

		h := NewHasher()
		first, err := h.Hash("same-password")
		if err != nil {
			t.Fatalf("Hash()でエラーが発生: %v", err)
		}
		second, err := h.Hash("same-password")
		if err != nil {
			t.Fatalf("Hash()でエラーが発生: %v", err)
		}
		if first == second {
			t.Error("2回のハッシュ化で同一のダイジェストが生成された")
		}
	})
}
