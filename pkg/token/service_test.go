package token

import (
	"testing"
	"time"
)

// TestServiceIssue はTTLポリシーに基づくトークン発行を検証する。
func TestServiceIssue(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("アクセストークンとリフレッシュトークンのTTLが個別に反映されること", func(t *testing.T) {
		t.Parallel()

		codec := NewCodec(testSecret, WithClock(fixedClock(base)))
		svc := NewService(codec, 15*time.Minute, 168*time.Hour)

		accessToken, err := svc.IssueAccessToken("alice", "user-id-1")
		if err != nil {
			t.Fatalf("IssueAccessToken()でエラーが発生: %v", err)
		}
		refreshToken, err := svc.IssueRefreshToken("alice", "user-id-1")
		if err != nil {
			t.Fatalf("IssueRefreshToken()でエラーが発生: %v", err)
		}

		accessClaims, err := svc.Verify(accessToken)
		if err != nil {
			t.Fatalf("アクセストークンの検証に失敗: %v", err)
		}
		refreshClaims, err := svc.Verify(refreshToken)
		if err != nil {
			t.Fatalf("リフレッシュトークンの検証に失敗: %v", err)
		}

		if want := base.Add(15 * time.Minute); !accessClaims.ExpiresAt.Time.Equal(want) {
			t.Errorf("アクセストークンのExpiresAt = %v, want %v", accessClaims.ExpiresAt.Time, want)
		}
		if want := base.Add(168 * time.Hour); !refreshClaims.ExpiresAt.Time.Equal(want) {
			t.Errorf("リフレッシュトークンのExpiresAt = %v, want %v", refreshClaims.ExpiresAt.Time, want)
		}
	})

	t.Run("IssuePairが同一の識別情報を持つ異なる2トークンを返すこと", func(t *testing.T) {
		t.Parallel()

		codec := NewCodec(testSecret, WithClock(fixedClock(base)))
		svc := NewService(codec, 15*time.Minute, 168*time.Hour)

		pair, err := svc.IssuePair("bob", "user-id-2")
		if err != nil {
			t.Fatalf("IssuePair()でエラーが発生: %v", err)
		}
		if pair.AccessToken == pair.RefreshToken {
			t.Error("アクセストークンとリフレッシュトークンが同一")
		}

		for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
			claims, err := svc.Verify(tok)
			if err != nil {
				t.Fatalf("Verify()でエラーが発生: %v", err)
			}
			if claims.Subject != "bob" {
				t.Errorf("Subject = %q, want %q", claims.Subject, "bob")
			}
			if claims.UserID != "user-id-2" {
				t.Errorf("UserID = %q, want %q", claims.UserID, "user-id-2")
			}
		}
	})

	t.Run("2つのトークン種別が構造上同一であること", func(t *testing.T) {
		t.Parallel()

		// TTLが同じならアクセスとリフレッシュは区別できない
		codec := NewCodec(testSecret, WithClock(fixedClock(base)))
		svc := NewService(codec, time.Hour, time.Hour)

		accessToken, err := svc.IssueAccessToken("carol", "user-id-3")
		if err != nil {
			t.Fatalf("IssueAccessToken()でエラーが発生: %v", err)
		}
		refreshToken, err := svc.IssueRefreshToken("carol", "user-id-3")
		if err != nil {
			t.Fatalf("IssueRefreshToken()でエラーが発生: %v", err)
		}
		if accessToken != refreshToken {
			t.Error("同一TTLで発行したトークンが一致しない")
		}
	})
}
