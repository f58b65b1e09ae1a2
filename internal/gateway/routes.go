package gateway

import "strings"

// RouteRule はパス接頭辞と転送先サービスの対応を表す。
type RouteRule struct {
	// PathPrefix はリクエストパスの接頭辞。
	PathPrefix string
	// Upstream は転送先サービスのベースURL。
	Upstream string
}

// RouteTable は順序付きのルーティング規則。起動時に一度だけ構築し、
// 以降は読み取り専用で共有する。
type RouteTable []RouteRule

// Resolve はパスに前方一致する最初の規則の転送先を返す。
// 先勝ちで評価し、一致しない場合はfalseを返す。
func (t RouteTable) Resolve(path string) (string, bool) {
	for _, r := range t {
		if strings.HasPrefix(path, r.PathPrefix) {
			return r.Upstream, true
		}
	}
	return "", false
}

// buildRoutes は設定から順序付きルーティング規則を構築する。
func buildRoutes(cfg Config) RouteTable {
	return RouteTable{
		{PathPrefix: "/api/auth/", Upstream: cfg.AuthServiceURL},
		{PathPrefix: "/api/images", Upstream: cfg.ImageServiceURL},
		{PathPrefix: "/api/user/", Upstream: cfg.ImageServiceURL},
		{PathPrefix: "/api/activity", Upstream: cfg.ActivityServiceURL},
	}
}
