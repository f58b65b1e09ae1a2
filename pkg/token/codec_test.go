package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// testSecret はテスト用の署名秘密鍵。
const testSecret = "test-secret-key-for-unit-tests"

// fixedClock は固定時刻を返すクロック関数を生成する。
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestCodecSignAndVerify は署名と検証のラウンドトリップを検証する。
func TestCodecSignAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("有効期限内のトークンは同じサブジェクトとユーザーIDに復元できること", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		codec := NewCodec(testSecret, WithClock(fixedClock(base)))

		tok, err := codec.Sign("alice", "user-id-1", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}
		if tok == "" {
			t.Fatal("Sign()が空文字列を返した")
		}

		claims, err := codec.Verify(tok)
		if err != nil {
			t.Fatalf("Verify()でエラーが発生: %v", err)
		}
		if claims.Subject != "alice" {
			t.Errorf("Subject = %q, want %q", claims.Subject, "alice")
		}
		if claims.UserID != "user-id-1" {
			t.Errorf("UserID = %q, want %q", claims.UserID, "user-id-1")
		}
	})

	t.Run("トークンがドット区切りの3セグメントであること", func(t *testing.T) {
		t.Parallel()

		codec := NewCodec(testSecret)
		tok, err := codec.Sign("bob", "user-id-2", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}
		if got := len(strings.Split(tok, ".")); got != 3 {
			t.Errorf("セグメント数 = %d, want 3", got)
		}
	})

	t.Run("iatとexpがTTLを反映していること", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		codec := NewCodec(testSecret, WithClock(fixedClock(base)))

		tok, err := codec.Sign("carol", "user-id-3", 30*time.Minute)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		claims, err := codec.Verify(tok)
		if err != nil {
			t.Fatalf("Verify()でエラーが発生: %v", err)
		}
		if !claims.IssuedAt.Time.Equal(base) {
			t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt.Time, base)
		}
		if want := base.Add(30 * time.Minute); !claims.ExpiresAt.Time.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, want)
		}
	})
}

// TestCodecVerifyExpiry は有効期限の検証を確認する。
func TestCodecVerifyExpiry(t *testing.T) {
	t.Parallel()

	t.Run("TTLゼロのトークンはErrExpiredで拒否されること", func(t *testing.T) {
		t.Parallel()

		// exp == now の境界は厳密に期限切れとして扱う
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		codec := NewCodec(testSecret, WithClock(fixedClock(base)))

		tok, err := codec.Sign("dave", "user-id-4", 0)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		if _, err := codec.Verify(tok); !errors.Is(err, ErrExpired) {
			t.Errorf("Verify() error = %v, want ErrExpired", err)
		}
	})

	t.Run("過去に期限切れとなったトークンはErrExpiredで拒否されること", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		signer := NewCodec(testSecret, WithClock(fixedClock(base)))
		verifier := NewCodec(testSecret, WithClock(fixedClock(base.Add(2*time.Hour))))

		tok, err := signer.Sign("erin", "user-id-5", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		if _, err := verifier.Verify(tok); !errors.Is(err, ErrExpired) {
			t.Errorf("Verify() error = %v, want ErrExpired", err)
		}
	})

	t.Run("有効期限の直前ではまだ有効であること", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		signer := NewCodec(testSecret, WithClock(fixedClock(base)))
		verifier := NewCodec(testSecret, WithClock(fixedClock(base.Add(time.Hour-time.Second))))

		tok, err := signer.Sign("frank", "user-id-6", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		if _, err := verifier.Verify(tok); err != nil {
			t.Errorf("Verify()でエラーが発生: %v", err)
		}
	})
}

// TestCodecVerifyTamperAndMalformed は改ざん・構造不正の検出を確認する。
func TestCodecVerifyTamperAndMalformed(t *testing.T) {
	t.Parallel()

	t.Run("署名セグメントを改ざんしたトークンはErrSignatureMismatchで拒否されること", func(t *testing.T) {
		t.Parallel()

		codec := NewCodec(testSecret)
		tok, err := codec.Sign("grace", "user-id-7", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		parts := strings.Split(tok, ".")
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		if _, err := codec.Verify(tampered); !errors.Is(err, ErrSignatureMismatch) {
			t.Errorf("Verify() error = %v, want ErrSignatureMismatch", err)
		}
	})

	t.Run("異なる鍵で署名されたトークンはErrSignatureMismatchで拒否されること", func(t *testing.T) {
		t.Parallel()

		other := NewCodec("another-secret-key")
		tok, err := other.Sign("henry", "user-id-8", time.Hour)
		if err != nil {
			t.Fatalf("Sign()でエラーが発生: %v", err)
		}

		codec := NewCodec(testSecret)
		if _, err := codec.Verify(tok); !errors.Is(err, ErrSignatureMismatch) {
			t.Errorf("Verify() error = %v, want ErrSignatureMismatch", err)
		}
	})

	t.Run("構造的に不正な文字列はErrMalformedで拒否されること", func(t *testing.T) {
		t.Parallel()

		codec := NewCodec(testSecret)
		for _, input := range []string{"", "not-a-token", "only.two", "a.b.c.d"} {
			if _, err := codec.Verify(input); !errors.Is(err, ErrMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrMalformed", input, err)
			}
		}
	})
}
