package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// ガード判定の結果。メトリクスのラベルとして使用する。
const (
	GuardVerdictForward           = "forward"
	GuardVerdictRedirectDashboard = "redirect_dashboard"
	GuardVerdictRedirectLogin     = "redirect_login"
	GuardVerdictRejectAPI         = "reject_api"
)

// GuardMetrics はルートガードの判定結果を記録するインターフェース。
type GuardMetrics interface {
	RecordGuardVerdict(verdict string)
}

// RouteGuard はリクエストがハンドラーに到達する前にパスを分類し、
// セッションCookieの有無だけでアクセス可否を判定するインターセプター。
//
// 分類は3種類: 許可リストに完全一致するpublic、/apiプレフィックスのAPI、
// それ以外のprotected page。判定はCookieの存在のみで行い、
// トークンの有効性は検証しない。無効なトークンはここを通過し、
// 下流のセッションミドルウェアとハンドラーが拒否する。
type RouteGuard struct {
	publicPaths map[string]bool
	metrics     GuardMetrics
}

// NewRouteGuard はRouteGuardを生成する。metricsはnilでもよい。
func NewRouteGuard(metrics GuardMetrics) *RouteGuard {
	return &RouteGuard{
		publicPaths: map[string]bool{
			"/":         true,
			"/login":    true,
			"/signup":   true,
			"/api-docs": true,
		},
		metrics: metrics,
	}
}

// Middleware はガード判定を行うミドルウェアを返す。
func (g *RouteGuard) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			hasToken := g.hasSessionCookie(r)

			isPublic := g.publicPaths[path]
			isAPI := strings.HasPrefix(path, "/api")
			isAuthAPI := strings.HasPrefix(path, "/api/auth")

			switch {
			case isPublic:
				// ログイン済みユーザーがlogin/signupに来た場合はダッシュボードへ
				if hasToken && (path == "/login" || path == "/signup") {
					g.record(GuardVerdictRedirectDashboard)
					http.Redirect(w, r, "/dashboard", http.StatusFound)
					return
				}
				g.record(GuardVerdictForward)
				next.ServeHTTP(w, r)

			case isAPI && !isAuthAPI && !hasToken:
				// APIクライアントにはリダイレクトせず401を返す
				g.record(GuardVerdictRejectAPI)
				WriteUnauthorized(w, "Unauthorized - Please log in")

			case isAPI:
				// トークンの有効性は下流のセッションミドルウェアが再検証する
				g.record(GuardVerdictForward)
				next.ServeHTTP(w, r)

			case !hasToken:
				// 保護ページ: 元のパスを復帰先としてログインへ
				g.record(GuardVerdictRedirectLogin)
				loginURL := "/login?from=" + url.QueryEscape(path)
				http.Redirect(w, r, loginURL, http.StatusFound)

			default:
				g.record(GuardVerdictForward)
				next.ServeHTTP(w, r)
			}
		})
	}
}

// hasSessionCookie はセッションCookieが存在し、空でないかだけを判定する。
func (g *RouteGuard) hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	return err == nil && cookie.Value != ""
}

func (g *RouteGuard) record(verdict string) {
	if g.metrics != nil {
		g.metrics.RecordGuardVerdict(verdict)
	}
}
