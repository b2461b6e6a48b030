package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

const sessionCookieName = "sessionId"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*model.UserSummary, error)
	Authenticate(ctx context.Context, email, password string) (string, *model.UserSummary, error)
	ResolveSession(ctx context.Context, token string) (*model.UserSummary, error)
	EndSession(ctx context.Context, token string) error
}

// AuthMetrics は認証系のメトリクスを記録するインターフェース。
type AuthMetrics interface {
	RecordSignup()
	RecordLogin(outcome string)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）。広告のみでサーバー側では失効させない。
}

// AuthHandler はサインアップ・ログイン・ログアウト関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics AuthMetrics
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnilでもよい。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, metrics AuthMetrics) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: metrics,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup は新規アカウントを作成する。
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteValidationError(w, nil)
		return
	}

	if details := validateSignup(req.Name, req.Email, req.Password); details != nil {
		middleware.WriteValidationError(w, details)
		return
	}

	if _, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeAPIError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignup()
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User created successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login はメールアドレスとパスワードで認証し、セッションCookieを設定する。
// アカウント不在とパスワード不一致はワイヤ上では同じ401に畳み込む。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteValidationError(w, nil)
		return
	}

	if details := validateLogin(req.Email, req.Password); details != nil {
		middleware.WriteValidationError(w, details)
		return
	}

	token, _, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLogin("failure")
		}
		apiErr, ok := err.(*model.APIError)
		if ok && (apiErr.Code == model.ErrCodeUserNotFound || apiErr.Code == model.ErrCodeWrongPassword) {
			middleware.WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
				Code:     apiErr.Code,
				Message:  "Invalid email or password",
				Category: "auth",
			})
			return
		}
		writeAPIError(w, err)
		return
	}

	h.setSessionCookie(w, token)

	if h.metrics != nil {
		h.metrics.RecordLogin("success")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
	})
}

// Logout はセッションを破棄し、Cookieをクリアする。
// Cookieが無い場合も200を返す（冪等）。
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		if endErr := h.service.EndSession(r.Context(), cookie.Value); endErr != nil {
			slog.Error("failed to end session", slog.String("error", endErr.Error()))
			// セッション削除に失敗してもCookieはクリアする
		}
	}

	h.clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me は現在のログイン状態を返す。未認証でも200で返す。
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	user, err := h.service.ResolveSession(r.Context(), token)
	if err != nil {
		slog.Error("failed to resolve session", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"user":          nil,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]string{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// setSessionCookie はセッショントークンをHTTP Only Cookieとして設定する。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieを削除する。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
