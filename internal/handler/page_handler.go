package handler

import (
	"fmt"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/middleware"
)

// PageHandler はサーバーレンダリングページの最小実装。
// ページの見た目は関心の対象外で、ルートガードの分類対象となるパスを
// 提供することと、保護ページでのサーバー側認証再チェックだけを担う。
type PageHandler struct {
	service AuthServiceInterface
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(service AuthServiceInterface) *PageHandler {
	return &PageHandler{service: service}
}

// Home はトップページを返す。
// GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	writePage(w, "taskdeck", "<p>A minimal task tracker.</p>")
}

// Login はログインページを返す。
// GET /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Log in", `<form method="post" action="/api/auth/login"></form>`)
}

// Signup はサインアップページを返す。
// GET /signup
func (h *PageHandler) Signup(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Sign up", `<form method="post" action="/api/auth/signup"></form>`)
}

// APIDocs はAPIドキュメントページを返す。
// GET /api-docs
func (h *PageHandler) APIDocs(w http.ResponseWriter, r *http.Request) {
	writePage(w, "API", "<p>POST /api/auth/signup, POST /api/auth/login, GET|POST /api/tasks, PUT|DELETE /api/tasks/{taskId}</p>")
}

// Dashboard はダッシュボードページを返す。
// ルートガードはCookieの存在しか検証しないため、
// 失効トークンの拒否はここでセッションを再解決して行う。
// GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	user, err := h.service.ResolveSession(r.Context(), token)
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	writePage(w, "Dashboard", fmt.Sprintf("<p>Signed in as %s</p>", user.Name))
}

// writePage は最小のHTMLページを書き込む。
func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1>%s</body></html>", title, title, body)
}
