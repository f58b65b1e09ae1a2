package token

import "time"

// Pair はアクセストークンとリフレッシュトークンの組。
type Pair struct {
	// AccessToken は短命のアクセストークン。
	AccessToken string `json:"accessToken"`
	// RefreshToken は長命のリフレッシュトークン。
	RefreshToken string `json:"refreshToken"`
}

// Service はトークン発行ポリシーを提供する。
// アクセスとリフレッシュで個別に設定可能なTTLを持ち、
// 署名そのものはCodecに委譲する。
type Service struct {
	// codec はトークンの署名・検証コーデック。
	codec *Codec
	// accessTTL はアクセストークンの有効期間。
	accessTTL time.Duration
	// refreshTTL はリフレッシュトークンの有効期間。
	refreshTTL time.Duration
}

// NewService は新しいトークン発行サービスを生成する。
func NewService(codec *Codec, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken は短命のアクセストークンを発行する。
func (s *Service) IssueAccessToken(username, userID string) (string, error) {
	return s.codec.Sign(username, userID, s.accessTTL)
}

// IssueRefreshToken は長命のリフレッシュトークンを発行する。
func (s *Service) IssueRefreshToken(username, userID string) (string, error) {
	return s.codec.Sign(username, userID, s.refreshTTL)
}

// IssuePair は同一の識別情報に紐づくアクセス・リフレッシュトークンの組を発行する。
func (s *Service) IssuePair(username, userID string) (Pair, error) {
	accessToken, err := s.IssueAccessToken(username, userID)
	if err != nil {
		return Pair{}, err
	}
	refreshToken, err := s.IssueRefreshToken(username, userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Verify はトークンを検証してクレームを返す。Codecへの委譲。
func (s *Service) Verify(tokenString string) (*Claims, error) {
	return s.codec.Verify(tokenString)
}
