package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	authdb "github.com/ysakura/picstream/internal/auth/db"
	"github.com/ysakura/picstream/pkg/password"
	"github.com/ysakura/picstream/pkg/token"
)

// AuthResult は認証成功時に返すトークンの組とユーザーID。
type AuthResult struct {
	// UserID はユーザーの一意識別子（UUID文字列）。
	UserID string `json:"userId"`
	// AccessToken は短命のアクセストークン。
	AccessToken string `json:"accessToken"`
	// RefreshToken は長命のリフレッシュトークン。
	RefreshToken string `json:"refreshToken"`
}

// Service は資格情報ストアに対する登録・ログイン・リフレッシュを提供する。
// 依存はすべてコンストラクタ引数で受け取る。
type Service struct {
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *authdb.Queries
	// hasher はパスワードのハッシュ化・照合を行う。
	hasher *password.Hasher
	// tokens はトークンの発行・検証を行う。
	tokens *token.Service
}

// NewService は新しい認証サービスを生成する。
func NewService(queries *authdb.Queries, hasher *password.Hasher, tokens *token.Service) *Service {
	return &Service{
		queries: queries,
		hasher:  hasher,
		tokens:  tokens,
	}
}

// Register は新規ユーザーを登録し、トークンの組を発行する。
// ユーザー名・メールアドレスの重複は先に検出した方のみを報告する。
// 同時登録の競合はアプリケーション側でロックせず、ストアの
// UNIQUE制約に委譲する。
func (s *Service) Register(ctx context.Context, username, email, plainPassword string) (*AuthResult, error) {
	taken, err := s.queries.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザー名の存在確認に失敗: %w", err)
	}
	if taken != 0 {
		return nil, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}

	taken, err = s.queries.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("メールアドレスの存在確認に失敗: %w", err)
	}
	if taken != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	digest, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	userID := uuid.New().String()
	if err := s.queries.CreateUser(ctx, authdb.CreateUserParams{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	}); err != nil {
		// 事前チェックをすり抜けた同時登録はUNIQUE制約違反として現れる
		return nil, mapConstraintError(err, username, email)
	}

	pair, err := s.tokens.IssuePair(username, userID)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗: %w", err)
	}

	return &AuthResult{
		UserID:       userID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login はユーザー名とパスワードを照合し、トークンの組を発行する。
// ユーザー不在とパスワード不一致は同一のエラーを返す。
func (s *Service) Login(ctx context.Context, username, plainPassword string) (*AuthResult, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.Username, user.ID)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗: %w", err)
	}

	return &AuthResult{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組を発行する。
// 欠落・不正・期限切れ・サブジェクト未解決はすべてErrInvalidRefreshTokenになる。
// 使用済みトークンの失効は行わないため、同じトークンを複数回提示できる。
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.queries.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.Username, user.ID)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗: %w", err)
	}

	return &AuthResult{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// LookupUsername はユーザーIDをユーザー名に解決する読み取り専用の射影。
// 他サービスがX-User-Idヘッダーを表示名へ解決するために使用する。
func (s *Service) LookupUsername(ctx context.Context, userID string) (string, error) {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return "", fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	return user.Username, nil
}

// mapConstraintError はSQLiteのUNIQUE制約違反を対応する重複エラーに変換する。
func mapConstraintError(err error, username, email string) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	case strings.Contains(msg, "users.email"):
		return fmt.Errorf("%w: %s", ErrEmailTaken, email)
	default:
		return fmt.Errorf("ユーザーの保存に失敗: %w", err)
	}
}
